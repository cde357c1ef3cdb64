// Package results persists the collected match set. From the
// collection phase's perspective the set is append-only; the
// enrichment pass updates records in place. Each flush rewrites the
// complete snapshot atomically.
package results

// Package retry provides bounded retry with pluggable backoff for
// transient fetch failures. Persistence errors and parse errors are
// never retried; the default predicate consults the error taxonomy in
// pkg/errors.
package retry

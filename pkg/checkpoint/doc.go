// Package checkpoint provides durable progress state for resumable
// harvesting. The checkpoint is the source of truth for the pagination
// cursor and enrichment completion; the result store is the source of
// truth for identity membership.
package checkpoint

// Package harvest implements the checkpointed incremental-harvest
// engine: resumable offset pagination with identity-key deduplication,
// a per-record enrichment pass, wall-clock budgeted execution and
// crash-safe incremental persistence of both progress state and
// collected results.
//
// A run is fully sequential. The budget is checked cooperatively at
// step boundaries (between pages, between enrichment records); the
// engine exits the current phase cleanly rather than being preempted
// mid-fetch.
package harvest

// Package reconcile decides, for a batch of locally built records, whether
// each must be created in Golem Base, update an existing entity, or be
// skipped, and then executes the writes in batches.
//
// # Matching policy
//
// Per record, in priority order:
//
//  1. a remote entity with the same entity checksum exists -> skip
//     (stored content is identical)
//  2. a remote entity with the same (file_name, category) pair exists ->
//     update that entity in place
//  3. otherwise -> create
//
// # Batch query strategy
//
// Classification issues exactly two remote queries regardless of batch
// size: one OR-combined query over every entity checksum, and one over
// every file_name && category pair. The result sets become local lookup
// maps and every record is classified in memory. If either query fails the
// whole batch is downgraded to skip with reason "query_error" and the
// failure is surfaced on the plan; records are never misclassified on a
// guess.
//
// # Execution
//
// Creates and updates are chunked into caller-sized batches and submitted
// sequentially. A failed batch is logged and counted but never aborts the
// remaining batches; the summary reports per-outcome counts rather than a
// single pass/fail signal. Partial success is the expected outcome.
package reconcile

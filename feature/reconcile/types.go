package reconcile

// Outcome is the reconciliation decision for a single record.
type Outcome string

const (
	OutcomeCreate Outcome = "create"
	OutcomeUpdate Outcome = "update"
	OutcomeSkip   Outcome = "skip"
)

// Reason explains why an outcome was chosen.
type Reason string

const (
	// ReasonChecksumExists: stored content is identical, nothing to do.
	ReasonChecksumExists Reason = "entity_checksum_exists"
	// ReasonIdentityExists: same file name and category stored with
	// different content; the stored entity is updated in place.
	ReasonIdentityExists Reason = "file_name_category_exists"
	// ReasonNotFound: no remote match on either key.
	ReasonNotFound Reason = "not_found"
	// ReasonQueryError: a batched lookup failed; the record is skipped
	// rather than guessed at.
	ReasonQueryError Reason = "query_error"
)

// Result is the per-record classification outcome.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Reason  Reason  `json:"reason"`

	// EntityKey is the matched remote entity key for update and
	// checksum-skip outcomes, empty otherwise.
	EntityKey string `json:"entity_key,omitempty"`
}

// Summary provides aggregate counts for one reconciliation run.
type Summary struct {
	// Total is the number of records classified.
	Total int `json:"total"`

	// Created counts entities acknowledged as created.
	Created int `json:"created"`

	// Updated counts entities acknowledged as updated.
	Updated int `json:"updated"`

	// Skipped counts records that needed no write.
	Skipped int `json:"skipped"`

	// FailedCreates and FailedUpdates count intended writes that were not
	// completed because their batch failed or the run was interrupted.
	FailedCreates int `json:"failed_creates"`
	FailedUpdates int `json:"failed_updates"`

	// FailedBatches counts write batches that errored.
	FailedBatches int `json:"failed_batches"`

	// QueryFailed marks a run whose batched lookups errored; every record
	// was skipped and no write was attempted.
	QueryFailed bool `json:"query_failed"`

	// Aborted marks a run interrupted by context cancellation. Writes
	// acknowledged before the interrupt stand.
	Aborted bool `json:"aborted"`
}

package reconcile

import (
	"context"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/golembase"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/feature/entity"
)

// Plan holds the classification of one batch of records. Records keeps the
// caller's iteration order for reporting; the classification itself is a
// pure function of the two lookup maps and does not depend on it.
type Plan struct {
	Records []*entity.Record
	Results map[*entity.Record]Result

	// QueryErr is set when a batched lookup failed and the whole batch was
	// downgraded to skip/query_error.
	QueryErr error
}

// Counts returns the number of records per outcome.
func (p *Plan) Counts() (creates, updates, skips int) {
	for _, res := range p.Results {
		switch res.Outcome {
		case OutcomeCreate:
			creates++
		case OutcomeUpdate:
			updates++
		case OutcomeSkip:
			skips++
		}
	}
	return creates, updates, skips
}

// Classify decides create/update/skip for every record using two batched
// remote lookups: one over entity checksums, one over (file_name, category)
// pairs. A lookup failure marks every record skip/query_error instead of
// guessing; the error is preserved on the plan for the run summary.
func Classify(ctx context.Context, client golembase.Client, records []*entity.Record) *Plan {
	plan := &Plan{
		Records: records,
		Results: make(map[*entity.Record]Result, len(records)),
	}
	if len(records) == 0 {
		return plan
	}

	byChecksum, err := lookupByChecksum(ctx, client, records)
	if err == nil {
		var byIdentity map[string]string
		byIdentity, err = lookupByIdentity(ctx, client, records)
		if err == nil {
			for _, rec := range records {
				plan.Results[rec] = classifyOne(rec, byChecksum, byIdentity)
			}
			return plan
		}
	}

	// Fallback: never misclassify on a failed lookup.
	plan.QueryErr = err
	for _, rec := range records {
		plan.Results[rec] = Result{Outcome: OutcomeSkip, Reason: ReasonQueryError}
	}
	return plan
}

// classifyOne applies the matching policy for a single record. Exact
// checksum match wins over identity match; no match means create.
func classifyOne(rec *entity.Record, byChecksum, byIdentity map[string]string) Result {
	if key, ok := byChecksum[rec.EntityChecksum()]; ok {
		return Result{Outcome: OutcomeSkip, Reason: ReasonChecksumExists, EntityKey: key}
	}
	if key, ok := byIdentity[identityKey(rec.FileName(), rec.Category())]; ok {
		return Result{Outcome: OutcomeUpdate, Reason: ReasonIdentityExists, EntityKey: key}
	}
	return Result{Outcome: OutcomeCreate, Reason: ReasonNotFound}
}

// identityKey joins the identity pair into one lookup key.
func identityKey(fileName, category string) string {
	return fileName + "|" + category
}

// lookupByChecksum runs one OR-combined query over every record's entity
// checksum and maps each stored checksum to its entity key.
func lookupByChecksum(ctx context.Context, client golembase.Client, records []*entity.Record) (map[string]string, error) {
	terms := make([]golembase.Expr, 0, len(records))
	for _, rec := range records {
		terms = append(terms, golembase.Eq("_sys_entity_checksum", rec.EntityChecksum()))
	}

	entities, err := client.QueryEntities(ctx, golembase.Or(terms...).String())
	if err != nil {
		return nil, err
	}

	byChecksum := make(map[string]string, len(entities))
	for _, e := range entities {
		sum := e.StringAnnotation("_sys_entity_checksum")
		if sum == "" {
			continue
		}
		if _, ok := byChecksum[sum]; !ok {
			byChecksum[sum] = e.Key
		}
	}
	return byChecksum, nil
}

// lookupByIdentity runs one OR-combined query over every record's
// file_name && category pair and maps each stored pair to its entity key.
// The first entity returned for a pair wins.
func lookupByIdentity(ctx context.Context, client golembase.Client, records []*entity.Record) (map[string]string, error) {
	terms := make([]golembase.Expr, 0, len(records))
	for _, rec := range records {
		terms = append(terms, golembase.And(
			golembase.Eq("_sys_file_name", rec.FileName()),
			golembase.Eq("_sys_category", rec.Category()),
		))
	}

	entities, err := client.QueryEntities(ctx, golembase.Or(terms...).String())
	if err != nil {
		return nil, err
	}

	byIdentity := make(map[string]string, len(entities))
	for _, e := range entities {
		fileName := e.StringAnnotation("_sys_file_name")
		category := e.StringAnnotation("_sys_category")
		if fileName == "" || category == "" {
			continue
		}
		key := identityKey(fileName, category)
		if _, ok := byIdentity[key]; !ok {
			byIdentity[key] = e.Key
		}
	}
	return byIdentity, nil
}

package reconcile

import (
	"context"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/golembase"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/feature/entity"

	"go.uber.org/zap"
)

// receiptLogLimit caps how many receipts are logged per batch.
const receiptLogLimit = 3

// Apply executes a classified plan: creates and updates are chunked into
// batches of batchSize and submitted sequentially with the given TTL. A
// failed batch is logged and counted without aborting the remaining
// batches. Context cancellation stops after the current batch; writes the
// store already acknowledged stand and are not retried.
func Apply(ctx context.Context, client golembase.Client, log *zap.Logger, plan *Plan, batchSize int, ttl int64) Summary {
	summary := Summary{Total: len(plan.Records), QueryFailed: plan.QueryErr != nil}

	var creates []golembase.Create
	var updates []golembase.Update

	for _, rec := range plan.Records {
		res := plan.Results[rec]
		payload, strs, nums := rec.WireForm()

		switch res.Outcome {
		case OutcomeSkip:
			log.Info("skipping record",
				zap.String("file_name", rec.FileName()),
				zap.String("reason", string(res.Reason)))
			summary.Skipped++
		case OutcomeUpdate:
			updates = append(updates, golembase.Update{
				Key:                res.EntityKey,
				Payload:            []byte(payload),
				TTL:                ttl,
				StringAnnotations:  strs,
				NumericAnnotations: nums,
			})
			log.Info("prepared update",
				zap.String("file_name", rec.FileName()),
				zap.String("entity_key", res.EntityKey),
				zap.String("reason", string(res.Reason)))
		case OutcomeCreate:
			creates = append(creates, golembase.Create{
				Payload:            []byte(payload),
				TTL:                ttl,
				StringAnnotations:  strs,
				NumericAnnotations: nums,
			})
			log.Info("prepared create",
				zap.String("file_name", rec.FileName()),
				zap.Int("string_annotations", len(strs)),
				zap.Int("number_annotations", len(nums)))
		}
	}

	log.Info("executing operations",
		zap.Int("creates", len(creates)),
		zap.Int("updates", len(updates)),
		zap.Int("skipped", summary.Skipped))

	applyBatches(ctx, log, &summary, len(creates), batchSize, "create",
		func(lo, hi int) (int, error) {
			receipts, err := client.CreateEntities(ctx, creates[lo:hi])
			if err != nil {
				return 0, err
			}
			logReceipts(log, "create receipt", receipts)
			return len(receipts), nil
		},
		&summary.Created, &summary.FailedCreates)

	applyBatches(ctx, log, &summary, len(updates), batchSize, "update",
		func(lo, hi int) (int, error) {
			receipts, err := client.UpdateEntities(ctx, updates[lo:hi])
			if err != nil {
				return 0, err
			}
			logReceipts(log, "update receipt", receipts)
			return len(receipts), nil
		},
		&summary.Updated, &summary.FailedUpdates)

	log.Info("finished processing records",
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed_batches", summary.FailedBatches))

	return summary
}

// applyBatches submits one operation kind in chunks, isolating per-batch
// failures and honoring cancellation between batches.
func applyBatches(
	ctx context.Context,
	log *zap.Logger,
	summary *Summary,
	total, batchSize int,
	kind string,
	submit func(lo, hi int) (int, error),
	done *int,
	failed *int,
) {
	for lo := 0; lo < total; lo += batchSize {
		if ctx.Err() != nil {
			summary.Aborted = true
			*failed += total - lo
			log.Warn("run interrupted, remaining batches not submitted",
				zap.String("kind", kind), zap.Int("remaining", total-lo))
			return
		}

		hi := min(lo+batchSize, total)
		batchIndex := lo/batchSize + 1

		n, err := submit(lo, hi)
		if err != nil {
			summary.FailedBatches++
			*failed += hi - lo
			log.Error("batch failed",
				zap.String("kind", kind),
				zap.Int("batch", batchIndex),
				zap.Error(err))
			continue
		}

		*done += n
		log.Info("batch succeeded",
			zap.String("kind", kind),
			zap.Int("batch", batchIndex),
			zap.Int("entities", n))
	}
}

func logReceipts(log *zap.Logger, msg string, receipts []golembase.Receipt) {
	for i, r := range receipts {
		if i >= receiptLogLimit {
			return
		}
		log.Info(msg,
			zap.String("entity_key", r.Key),
			zap.Uint64("expiration_block", r.ExpirationBlock))
	}
}

// Reconcile classifies and applies in one call, for callers that do not
// need to inspect the plan in between.
func Reconcile(ctx context.Context, client golembase.Client, log *zap.Logger, records []*entity.Record, batchSize int, ttl int64) Summary {
	plan := Classify(ctx, client, records)
	if plan.QueryErr != nil {
		log.Error("batched entity lookup failed, skipping whole batch", zap.Error(plan.QueryErr))
	}
	return Apply(ctx, client, log, plan, batchSize, ttl)
}

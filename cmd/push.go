package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/config"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/golembase"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/journal"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/logger"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/storage"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/feature/entity"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/feature/reconcile"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/feature/staging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the push command
	pushInDir     string
	pushBucket    string
	pushPrefix    string
	pushBatchSize int
	pushTTL       int64
	pushWatch     bool
)

// pushCmd reconciles staged records against the store and writes the delta.
var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push staged records to the GolemBase store",
	Long: `Push loads staged JSON record files, checks each one against the store,
and creates or updates only what changed.

A record whose entity checksum already exists in the store is skipped.
A record whose file name and category exist under a different checksum
becomes an update. Everything else becomes a create.

Examples:
  # Push from a local staging directory
  push --in-dir ./staged

  # Push from an object storage bucket
  push --bucket staged-records --prefix world-42/

  # Smaller batches and a week-long TTL
  push --in-dir ./staged --batch-size 5 --ttl 604800`,
	RunE: runPush,
}

func init() {
	pushCmd.Flags().StringVar(&pushInDir, "in-dir", "", "Local directory of staged record files")
	pushCmd.Flags().StringVar(&pushBucket, "bucket", "", "Object storage bucket of staged record files")
	pushCmd.Flags().StringVar(&pushPrefix, "prefix", "", "Object key prefix inside the bucket")
	pushCmd.Flags().IntVar(&pushBatchSize, "batch-size", 0, "Entities per create/update call (default from config)")
	pushCmd.Flags().Int64Var(&pushTTL, "ttl", 0, "Entity lifetime in seconds (default from config)")
	pushCmd.Flags().BoolVar(&pushWatch, "watch", false, "Subscribe to entity events while pushing")

	RootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	// Stop submitting new batches on Ctrl-C; the current batch finishes.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	batchSize := pushBatchSize
	if batchSize == 0 {
		batchSize = cfg.Push.BatchSize
	}
	ttl := pushTTL
	if ttl == 0 {
		ttl = cfg.Push.TTLSeconds
	}
	if batchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", batchSize)
	}
	if ttl < 1 {
		return fmt.Errorf("ttl must be at least 1 second, got %d", ttl)
	}
	if cfg.Chain.PrivateKey == "" {
		return fmt.Errorf("chain private key is required for push (set CHAIN_PRIVATE_KEY)")
	}
	if pushInDir == "" && pushBucket == "" {
		return fmt.Errorf("either --in-dir or --bucket is required")
	}
	if pushInDir != "" && pushBucket != "" {
		return fmt.Errorf("--in-dir and --bucket are mutually exclusive")
	}

	source := pushInDir
	if source == "" {
		source = "s3://" + pushBucket + "/" + pushPrefix
	}

	run := journal.NewRun("push", source)
	l = logger.WithRun(l, run.RunID)
	l.Info("starting push", zap.String("source", source),
		zap.Int("batch_size", batchSize), zap.Int64("ttl", ttl))

	records, err := loadStagedRecords(ctx, l, cfg)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		l.Warn("no staged records found, nothing to push")
		return nil
	}
	l.Info("loaded staged records", zap.Int("count", len(records)))

	client, err := golembase.Dial(cfg.Chain, l)
	if err != nil {
		return fmt.Errorf("failed to create store client: %w", err)
	}
	defer client.Close()

	if pushWatch {
		stop, err := client.WatchLogs(ctx, "push", golembase.WatchCallbacks{})
		if err != nil {
			l.Warn("entity event subscription failed", zap.Error(err))
		} else {
			defer stop()
		}
	}

	summary := reconcile.Reconcile(ctx, client, l, records, batchSize, ttl)

	recordRun(ctx, l, cfg, run, summary)

	if summary.QueryFailed {
		return fmt.Errorf("store lookup failed, no records were written")
	}
	return nil
}

// loadStagedRecords reads records from the configured source, local
// directory or bucket.
func loadStagedRecords(ctx context.Context, l *zap.Logger, cfg *config.Config) ([]*entity.Record, error) {
	loader := staging.NewLoader(l)

	if pushInDir != "" {
		records, err := loader.LoadDirectory(pushInDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load staged records: %w", err)
		}
		return records, nil
	}

	storageCfg := cfg.Storage
	storageCfg.Bucket = pushBucket
	client, err := storage.NewClient(storageCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	records, err := loader.LoadBucket(ctx, client, pushBucket, pushPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to load staged records: %w", err)
	}
	return records, nil
}

// recordRun writes the run summary to the journal when enabled. Journal
// failures degrade to a warning; the push result stands either way.
func recordRun(ctx context.Context, l *zap.Logger, cfg *config.Config, run *journal.Run, summary reconcile.Summary) {
	if !cfg.Journal.Enabled {
		return
	}

	run.Total = summary.Total
	run.Created = summary.Created
	run.Updated = summary.Updated
	run.Skipped = summary.Skipped
	run.FailedCreates = summary.FailedCreates
	run.FailedUpdates = summary.FailedUpdates
	run.FailedBatches = summary.FailedBatches
	run.QueryFailed = summary.QueryFailed
	run.Aborted = summary.Aborted

	db, err := journal.Connect(cfg.Journal)
	if err != nil {
		l.Warn("journal connection failed, run not recorded", zap.Error(err))
		return
	}
	// An interrupted run still gets journaled, so detach from cancellation.
	if err := journal.NewRecorder(db).Record(context.WithoutCancel(ctx), run); err != nil {
		l.Warn("failed to record run in journal", zap.Error(err))
	}
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/config"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/golembase"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/logger"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/feature/entity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the recreate command
	recreateVersion int64
	recreateOutDir  string
	recreateFlat    bool
)

// recreateCmd rebuilds the original files from stored entities.
var recreateCmd = &cobra.Command{
	Use:   "recreate",
	Short: "Recreate files from stored entities",
	Long: `Recreate queries the store for every entity of a schema version,
decodes each entity's embedded file data, and writes the files to disk.

By default files are grouped into one subdirectory per category
(image, video, audio, text, json). An entity that fails validation or
carries no file data is logged and skipped.

Examples:
  # Recreate all version 1 entities under ./recreated
  recreate

  # Flat output directory
  recreate --out-dir ./dump --flat`,
	RunE: runRecreate,
}

func init() {
	recreateCmd.Flags().Int64Var(&recreateVersion, "version", entity.SchemaVersion, "Schema version to query for")
	recreateCmd.Flags().StringVar(&recreateOutDir, "out-dir", "./recreated", "Directory to write files into")
	recreateCmd.Flags().BoolVar(&recreateFlat, "flat", false, "Write all files into out-dir without category subdirectories")

	RootCmd.AddCommand(recreateCmd)
}

func runRecreate(cmd *cobra.Command, args []string) error {
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

	client, err := golembase.Dial(cfg.Chain, l)
	if err != nil {
		return fmt.Errorf("failed to create store client: %w", err)
	}
	defer client.Close()

	query := golembase.EqInt("_sys_version", recreateVersion)
	l.Info("querying store", zap.String("query", query.String()))

	entities, err := client.QueryEntities(ctx, query.String())
	if err != nil {
		return fmt.Errorf("failed to query entities: %w", err)
	}
	l.Info("found entities", zap.Int("count", len(entities)))

	var written, failed int
	for i := range entities {
		if ctx.Err() != nil {
			l.Warn("recreate interrupted", zap.Int("written", written), zap.Int("remaining", len(entities)-i))
			break
		}

		rec, err := entity.FromEntity(&entities[i])
		if err != nil {
			l.Error("failed to rebuild record from entity",
				zap.String("entity_key", entities[i].Key), zap.Error(err))
			failed++
			continue
		}

		path, err := rec.Materialize(recreateOutDir, !recreateFlat)
		if err != nil {
			l.Error("failed to write file",
				zap.String("file_name", rec.FileName()), zap.Error(err))
			failed++
			continue
		}

		l.Info("recreated file", zap.String("path", path), zap.Int64("size", rec.FileSize()))
		written++
	}

	l.Info("recreate finished",
		zap.Int("written", written),
		zap.Int("failed", failed),
		zap.Int("total", len(entities)))

	if failed > 0 && written == 0 {
		return fmt.Errorf("no files could be recreated (%d failures)", failed)
	}
	return nil
}

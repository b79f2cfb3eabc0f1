package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/config"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/golembase"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/logger"

	"github.com/spf13/cobra"
)

// inspectCmd prints one entity's metadata.
var inspectCmd = &cobra.Command{
	Use:   "inspect <entity-key>",
	Short: "Print the metadata of a stored entity",
	Long: `Inspect fetches owner, expiration, and annotations for one entity key
and prints them as JSON.

Example:
  inspect 0x49f7e3...`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	RootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	meta, err := client.GetEntityMetadata(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch entity metadata: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

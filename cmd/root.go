package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/srctally/srctally/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "srctally",
	Short: "Deterministic source inventory and LLM context packing",
	Long:  "Scans a repository into a file inventory, ranks files by value, and packs a bounded, budget-aware selection into bundles and handoff artifacts.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Command dietctl reads the diet data files from the command line: it
// prints shopping lists and looks up CAD codes without starting the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dietapp/internal/diet"
)

// cli carries the global flags and the logger shared by the subcommands.
type cli struct {
	verbose  bool
	dataDir  string
	jsonOut  bool
	logger   *zap.Logger
	loadData func(ctx context.Context, dir string) (*diet.Bundle, error)
}

func newRootCmd() *cobra.Command {
	c := &cli{loadData: diet.Load}

	root := &cobra.Command{
		Use:           "dietctl",
		Short:         "Inspect the meal plan, shopping lists and CAD codes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if c.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			c.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&c.dataDir, "data", "data", "Directory holding the diet JSON files")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "Print JSON instead of text")

	root.AddCommand(c.shoppingCmd(), c.cadCmd())
	return root
}

func (c *cli) bundle(ctx context.Context) (*diet.Bundle, error) {
	c.logger.Debug("loading diet data", zap.String("dir", c.dataDir))
	b, err := c.loadData(ctx, c.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load diet data: %w", err)
	}
	return b, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Command exifmeta reads and combines image metadata through exiftool.
//
// Usage:
//
//	exifmeta combine [flags] <file|dir>...
//	exifmeta tag [flags] <file> <tag>
//	exifmeta version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simonhull/exifmeta/internal/config"
)

// app carries state shared by all subcommands.
type app struct {
	configPath string
	binary     string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "exifmeta",
		Short: "Read and combine image metadata with exiftool",
		Long: `exifmeta drives a long-running exiftool process to read metadata.

It can read single tags with typed decoding, or merge the grouped output
of many files into one JSON document listing every distinct value seen
for each tag.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.binary, "binary", "", "exiftool executable (default from config or PATH)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newCombineCmd(a), newTagCmd(a), newVersionCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("binary") {
		cfg.Binary = a.binary
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Logger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

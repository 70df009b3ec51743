package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/textclean/cmd/textclean/opts"
	"github.com/walteh/textclean/pkg/config"
	"github.com/walteh/textclean/pkg/history"
	"github.com/walteh/textclean/pkg/log"
	"github.com/walteh/textclean/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
	docGlobs   []string
	inputPath  string
)

// newRootOpts fills the shared options once flags have been parsed
func newRootOpts(cmd *cobra.Command, o *opts.RootOpts) error {
	// Attach the console logger so document loads report per-file progress
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	ctx := log.NewContext(cmd.Context(), log.New(os.Stderr, level))
	cmd.SetContext(ctx)

	// Create user logger
	o.UserLogger = status.NewUserLogger(ctx)

	// Load config
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	o.Config = cfg

	// Create history store
	o.Store = history.NewStore(cfg.HistoryPath)

	o.DocGlobs = docGlobs
	o.InputPath = inputPath
	return nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".textclean.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringSliceVarP(&docGlobs, "docs", "D", nil, "glob patterns of document files to load")
	cmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "file with one document per line (- for stdin)")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

// TODO(dr.methodical): 📝 Add examples of flag usage

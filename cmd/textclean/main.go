package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/textclean/cmd/textclean/commands"
	"github.com/walteh/textclean/cmd/textclean/opts"
	"github.com/walteh/textclean/pkg/status"
)

func main() {
	ctx := log.Logger.WithContext(context.Background())

	// Shared options, filled once flags are parsed
	rootOpts := &opts.RootOpts{}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "textclean",
		Short: "A tool for cleaning text datasets with reversible operations",
		Long: `textclean previews and applies regex replacements across a set of text
documents, keeping an append-only history so any cleaned state can be
rebuilt bit-for-bit from the original documents.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			return newRootOpts(cmd, rootOpts)
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewCountsCmd(rootOpts),
		commands.NewCharsCmd(rootOpts),
		commands.NewPreviewCmd(rootOpts),
		commands.NewReplaceCmd(rootOpts),
		commands.NewNormalizeCmd(rootOpts),
		commands.NewReplayCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger := rootOpts.UserLogger
		if userLogger == nil {
			userLogger = status.NewUserLogger(ctx)
		}
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}

// TODO(dr.methodical): 🧪 Add tests for context cancellation

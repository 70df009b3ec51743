package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/textclean/cmd/textclean/opts"
	"github.com/walteh/textclean/pkg/session"
)

// NewCountsCmd creates a new counts command
func NewCountsCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Print document, token and character counts",
		Long: `Counts loads the documents, replays any persisted history on top of
them, and prints how many documents, whitespace-separated tokens and
characters the current state holds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "counts").Logger().WithContext(ctx)

			s, err := opts.ResumeSession(ctx)
			if err != nil {
				return err
			}

			before := session.ComputeCounts(s.Original())
			opts.UserLogger.LogCounts(before, s.Counts())
			return nil
		},
	}

	return cmd
}

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/textclean/cmd/textclean/opts"
	"gitlab.com/tozd/go/errors"
)

// NewCharsCmd creates a new chars command
func NewCharsCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		pattern string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "chars",
		Short: "Report unwanted characters still present in the documents",
		Long: `Chars scans the current document state with the unwanted-character
pattern (from --pattern or the config file) and reports how often each
matching character occurs, most frequent first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "chars").Logger().WithContext(ctx)

			s, err := opts.ResumeSession(ctx)
			if err != nil {
				return err
			}

			report, err := s.ReportUnwantedCharacters(ctx, pattern)
			if err != nil {
				return errors.Errorf("reporting unwanted characters: %w", err)
			}

			opts.UserLogger.LogCharReport(report, all)
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "unwanted-character regex (defaults to the configured pattern)")
	cmd.Flags().BoolVar(&all, "all", false, "list every matching character, not just the top ten")

	return cmd
}

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/textclean/cmd/textclean/opts"
	"github.com/walteh/textclean/pkg/history"
	"gitlab.com/tozd/go/errors"
)

// NewNormalizeCmd creates a new normalize command
func NewNormalizeCmd(opts *opts.RootOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Fold unicode to ASCII across all documents",
		Long: `Normalize decomposes accented and compatibility characters and drops
anything left outside ASCII, then records the operation in the history.
Documents that end up empty or whitespace-only are removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "normalize").Logger().WithContext(ctx)

			s, err := opts.ResumeSession(ctx)
			if err != nil {
				return err
			}

			before := s.Counts()
			if err := s.ApplyUnicodeNormalization(ctx); err != nil {
				return errors.Errorf("normalizing unicode: %w", err)
			}
			if err := opts.Store.Save(ctx, history.FromOperations(s.Operations())); err != nil {
				return errors.Errorf("saving history: %w", err)
			}

			opts.UserLogger.LogOperation(history.NormalizeUnicode())
			opts.UserLogger.LogCounts(before, s.Counts())

			if output != "" {
				return opts.WriteDocuments(output, s.Latest())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the resulting documents to this file (- for stdout)")

	return cmd
}

package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/textclean/cmd/textclean/opts"
	"github.com/walteh/textclean/pkg/docs"
	"github.com/walteh/textclean/pkg/session"
	"gitlab.com/tozd/go/errors"
)

// NewReplayCmd creates a new replay command
func NewReplayCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		output string
		expect string
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild the cleaned state from the original documents",
		Long: `Replay loads the original documents and applies the persisted history on
top of them, reproducing the cleaned state bit for bit. --verify replays
a second time and compares checksums; --expect checks the result against
a previously written document file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "replay").Logger().WithContext(ctx)

			s, err := opts.ResumeSession(ctx)
			if err != nil {
				return err
			}

			before := session.ComputeCounts(s.Original())
			opts.UserLogger.LogCounts(before, s.Counts())

			if verify {
				if err := s.VerifyHistory(ctx); err != nil {
					opts.UserLogger.LogValidation(false, "Replay verification failed", err)
					return err
				}
				opts.UserLogger.LogValidation(true, "Replay verified", nil)
			}

			if expect != "" {
				f, err := os.Open(expect)
				if err != nil {
					return errors.Errorf("opening expected file: %w", err)
				}
				expected, err := docs.LoadLines(f)
				f.Close()
				if err != nil {
					return errors.Errorf("reading expected file: %w", err)
				}
				if docs.Checksum(expected) != docs.Checksum(s.Latest()) {
					err := errors.Errorf("replayed state does not match %s", expect)
					opts.UserLogger.LogValidation(false, "Replay mismatch", err)
					return err
				}
				opts.UserLogger.LogValidation(true, "Replay matches expected documents", nil)
			}

			if output != "" {
				return opts.WriteDocuments(output, s.Latest())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the replayed documents to this file (- for stdout)")
	cmd.Flags().StringVar(&expect, "expect", "", "file of expected documents to compare against")
	cmd.Flags().BoolVar(&verify, "verify", false, "re-replay the history and check the checksum")

	return cmd
}

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/textclean/cmd/textclean/opts"
	"github.com/walteh/textclean/pkg/history"
	"github.com/walteh/textclean/pkg/render"
	"github.com/walteh/textclean/pkg/session"
	"gitlab.com/tozd/go/errors"
)

// NewPreviewCmd creates a new preview command
func NewPreviewCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		find        string
		replace     string
		note        string
		samples     int
		contextSize int
		apply       bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview a find/replace against sampled matches",
		Long: `Preview compiles the pattern, samples matches across the documents and
shows each match in context, before and after the replacement. Nothing
is modified unless --apply is passed, which confirms the previewed
replacement and records it in the history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "preview").Logger().WithContext(ctx)

			documents, err := opts.LoadDocuments(ctx)
			if err != nil {
				return err
			}
			h, err := opts.Store.Load(ctx)
			if err != nil {
				return errors.Errorf("loading history: %w", err)
			}

			sessionOpts := opts.SessionOptions()
			if samples > 0 {
				sessionOpts.SampleSize = samples
			}
			if contextSize > 0 {
				sessionOpts.ContextChars = contextSize
			}

			s, err := session.Resume(ctx, documents, h, sessionOpts)
			if err != nil {
				return errors.Errorf("resuming session: %w", err)
			}

			preview, err := s.PreviewReplace(ctx, find, replace)
			if err != nil {
				return errors.Errorf("previewing replacement: %w", err)
			}

			renderer := render.NewConsole(cmd.OutOrStdout())
			if err := renderer.RenderPreview(ctx, preview); err != nil {
				return errors.Errorf("rendering preview: %w", err)
			}

			if !apply || preview.NoMatches {
				return nil
			}

			before := s.Counts()
			if err := s.ApplyLastPreviewed(ctx, note); err != nil {
				return errors.Errorf("applying previewed replacement: %w", err)
			}
			if err := opts.Store.Save(ctx, history.FromOperations(s.Operations())); err != nil {
				return errors.Errorf("saving history: %w", err)
			}

			opts.UserLogger.LogOperation(history.RegexReplace(find, replace, note))
			opts.UserLogger.LogCounts(before, s.Counts())

			if output != "" {
				return opts.WriteDocuments(output, s.Latest())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&find, "find", "f", "", "regex pattern to find")
	cmd.Flags().StringVarP(&replace, "replace", "r", "", "replacement text ($1 expands capture groups)")
	cmd.Flags().StringVar(&note, "note", "", "note recorded with the operation when applying")
	cmd.Flags().IntVarP(&samples, "samples", "n", 0, "number of matches to sample (defaults to the configured size)")
	cmd.Flags().IntVar(&contextSize, "context", 0, "characters of context around each match")
	cmd.Flags().BoolVar(&apply, "apply", false, "apply the previewed replacement and record it")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the resulting documents to this file (- for stdout)")
	_ = cmd.MarkFlagRequired("find")

	return cmd
}

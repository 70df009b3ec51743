package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/textclean/cmd/textclean/opts"
	"github.com/walteh/textclean/pkg/history"
	"gitlab.com/tozd/go/errors"
)

// NewReplaceCmd creates a new replace command
func NewReplaceCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		find    string
		replace string
		note    string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "replace",
		Short: "Apply find/replace operations and record them in the history",
		Long: `Replace applies a regex replacement to every document and appends it to
the persisted history. With --find it applies a single replacement;
without it, every rule from the config file is applied in order. All
patterns are validated before anything runs, so a bad rule leaves the
documents and the history untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "replace").Logger().WithContext(ctx)

			var ops []history.Operation
			if find != "" {
				ops = append(ops, history.RegexReplace(find, replace, note))
			} else {
				for _, rule := range opts.Config.Rules {
					ops = append(ops, history.RegexReplace(rule.Find, rule.Replace, rule.Note))
				}
			}
			if len(ops) == 0 {
				return errors.New("nothing to apply: pass --find or add rules to the config file")
			}

			s, err := opts.ResumeSession(ctx)
			if err != nil {
				return err
			}

			before := s.Counts()
			if err := s.ApplyOperations(ctx, ops...); err != nil {
				return errors.Errorf("applying operations: %w", err)
			}
			if err := opts.Store.Save(ctx, history.FromOperations(s.Operations())); err != nil {
				return errors.Errorf("saving history: %w", err)
			}

			for _, op := range ops {
				opts.UserLogger.LogOperation(op)
			}
			opts.UserLogger.LogCounts(before, s.Counts())

			if output != "" {
				return opts.WriteDocuments(output, s.Latest())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&find, "find", "f", "", "regex pattern to find")
	cmd.Flags().StringVarP(&replace, "replace", "r", "", "replacement text ($1 expands capture groups)")
	cmd.Flags().StringVar(&note, "note", "", "note recorded with the operation")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the resulting documents to this file (- for stdout)")

	return cmd
}

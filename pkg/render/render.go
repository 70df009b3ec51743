// Package render turns preview results into human-facing output. The core
// emits structured records; everything here is display glue with no
// algorithmic content.
package render

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textclean/pkg/session"
)

// Renderer displays a preview. Implementations decide the medium: terminal,
// HTML, anything.
type Renderer interface {
	RenderPreview(ctx context.Context, preview *session.Preview) error
}

// Console renders previews as colored before/after lines: the matched text in
// red, the replacement in green, with ellipses marking truncated context.
type Console struct {
	out     io.Writer
	matched *color.Color
	replace *color.Color
}

// NewConsole creates a console renderer writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:     out,
		matched: color.New(color.FgRed),
		replace: color.New(color.FgGreen),
	}
}

// RenderPreview implements Renderer.
func (c *Console) RenderPreview(ctx context.Context, preview *session.Preview) error {
	if preview.NoMatches {
		return c.printf("No matches found!\n")
	}

	for _, rec := range preview.Samples {
		before := rec.ContextBefore
		if rec.TruncatedBefore {
			before = "..." + before
		}
		after := rec.ContextAfter
		if rec.TruncatedAfter {
			after += "..."
		}

		if err := c.printf("[doc %d] match %d/%d\n", rec.DocIndex, rec.MatchOrdinal, rec.MatchesInDoc); err != nil {
			return err
		}
		if err := c.printf("  before: %s%s%s\n", before, c.matched.Sprint(rec.MatchText), after); err != nil {
			return err
		}
		if err := c.printf("  after:  %s%s%s\n", before, c.replace.Sprint(rec.Replacement), after); err != nil {
			return err
		}
	}

	return c.printf("Total of %d matches in %d documents.\n", preview.TotalMatches, preview.DocsWithMatches)
}

func (c *Console) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		return errors.Errorf("writing preview: %w", err)
	}
	return nil
}

// TODO(dr.methodical): 📝 Add an HTML renderer for notebook-style output

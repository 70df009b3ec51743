package opts

import (
	"context"
	"os"

	"github.com/walteh/textclean/pkg/config"
	"github.com/walteh/textclean/pkg/docs"
	"github.com/walteh/textclean/pkg/history"
	"github.com/walteh/textclean/pkg/session"
	"github.com/walteh/textclean/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	Store      *history.Store
	UserLogger *status.UserLogger

	// Document sources, filled from root flags
	DocGlobs  []string
	InputPath string
}

// LoadDocuments reads the working document set from the configured source.
// --input wins over --docs; "-" reads newline-delimited documents from stdin.
func (o *RootOpts) LoadDocuments(ctx context.Context) ([]string, error) {
	if o.InputPath != "" {
		if o.InputPath == "-" {
			return docs.LoadLines(os.Stdin)
		}
		f, err := os.Open(o.InputPath)
		if err != nil {
			return nil, errors.Errorf("opening input file: %w", err)
		}
		defer f.Close()
		return docs.LoadLines(f)
	}
	if len(o.DocGlobs) > 0 {
		return docs.Load(ctx, o.DocGlobs)
	}
	return nil, errors.New("no document source: pass --input or --docs")
}

// SessionOptions maps the loaded config onto session options.
func (o *RootOpts) SessionOptions() session.Options {
	return session.Options{
		NormalizeSpaces: o.Config.NormalizeSpaces,
		SampleSize:      o.Config.SampleSize,
		ContextChars:    o.Config.ContextChars,
		UnwantedPattern: o.Config.UnwantedPattern,
	}
}

// NewSession loads documents and starts a fresh session with no history.
func (o *RootOpts) NewSession(ctx context.Context) (*session.Session, error) {
	documents, err := o.LoadDocuments(ctx)
	if err != nil {
		return nil, err
	}
	s, err := session.New(documents, o.SessionOptions())
	if err != nil {
		return nil, errors.Errorf("starting session: %w", err)
	}
	return s, nil
}

// ResumeSession loads documents plus the persisted history and replays it,
// so the session's latest state matches where the last run left off.
func (o *RootOpts) ResumeSession(ctx context.Context) (*session.Session, error) {
	documents, err := o.LoadDocuments(ctx)
	if err != nil {
		return nil, err
	}
	h, err := o.Store.Load(ctx)
	if err != nil {
		return nil, errors.Errorf("loading history: %w", err)
	}
	s, err := session.Resume(ctx, documents, h, o.SessionOptions())
	if err != nil {
		return nil, errors.Errorf("resuming session: %w", err)
	}
	return s, nil
}

// WriteDocuments writes the document set to path, one document per line.
// "-" writes to stdout.
func (o *RootOpts) WriteDocuments(path string, documents []string) error {
	if path == "-" {
		return docs.WriteLines(os.Stdout, documents)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	if err := docs.WriteLines(f, documents); err != nil {
		return err
	}
	return f.Close()
}

// TODO(dr.methodical): 🧪 Add tests for option validation

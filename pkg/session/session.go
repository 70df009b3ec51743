// Package session implements the interactive cleaning session: it owns the
// original and latest document sets, applies operations through the
// normalizer, drives the sampler for previews, and records everything in an
// operation history that can rebuild the latest state from the original.
//
// A session is single-threaded by design. Every method runs to completion
// before returning and nothing is locked; a host exposing a session to
// concurrent callers must serialize access externally.
package session

import (
	"context"
	"math/rand"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textclean/pkg/docs"
	"github.com/walteh/textclean/pkg/history"
	"github.com/walteh/textclean/pkg/normalize"
	"github.com/walteh/textclean/pkg/sampler"
)

const (
	// DefaultSampleSize bounds how many matches a preview displays.
	DefaultSampleSize = 10

	// DefaultContextChars is how much text is shown on each side of a match.
	DefaultContextChars = 25
)

// Options configures a session.
type Options struct {
	// NormalizeSpaces collapses space runs in every document after each
	// regex replace.
	NormalizeSpaces bool

	// SampleSize bounds preview samples. Zero means DefaultSampleSize.
	SampleSize int

	// ContextChars is the preview context window size per side. Zero means
	// DefaultContextChars.
	ContextChars int

	// UnwantedPattern is the optional pattern for unwanted-character
	// reports. Callers can instead supply a pattern per report call.
	UnwantedPattern string

	// Rand supplies the randomness for preview sampling. Nil means a
	// time-seeded source; tests inject a seeded one.
	Rand *rand.Rand
}

// Session is the cleaning session state machine.
type Session struct {
	normSpaces      bool
	sampleSize      int
	contextChars    int
	unwantedPattern string
	rng             *rand.Rand

	original []string
	latest   []string
	hist     *history.History
	pending  *pendingPreview
	counts   Counts
}

// pendingPreview caches the last previewed operation so a confirm action can
// apply it without re-specifying parameters. Not part of history until
// applied.
type pendingPreview struct {
	pattern     string
	replacement string
}

// New creates a session from an initial document collection. The documents
// are copied into both the original and latest sets, which start identical.
// An empty collection is rejected with ErrInvalidInput.
func New(documents []string, opts Options) (*Session, error) {
	if len(documents) == 0 {
		return nil, errors.Errorf("document collection is empty: %w", ErrInvalidInput)
	}

	s := &Session{
		normSpaces:      opts.NormalizeSpaces,
		sampleSize:      opts.SampleSize,
		contextChars:    opts.ContextChars,
		unwantedPattern: opts.UnwantedPattern,
		rng:             opts.Rand,
		original:        append([]string(nil), documents...),
		latest:          append([]string(nil), documents...),
		hist:            history.New(),
	}
	if s.sampleSize <= 0 {
		s.sampleSize = DefaultSampleSize
	}
	if s.contextChars <= 0 {
		s.contextChars = DefaultContextChars
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.counts = ComputeCounts(s.latest)
	return s, nil
}

// Resume creates a session from the original documents and a previously
// persisted history, replaying the history to rebuild the latest state.
func Resume(ctx context.Context, documents []string, h *history.History, opts Options) (*Session, error) {
	s, err := New(documents, opts)
	if err != nil {
		return nil, err
	}
	s.hist = h
	if err := s.RefreshFromHistory(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Original returns a copy of the immutable original document set.
func (s *Session) Original() []string {
	return append([]string(nil), s.original...)
}

// Latest returns a copy of the latest document set.
func (s *Session) Latest() []string {
	return append([]string(nil), s.latest...)
}

// Counts returns the current counts snapshot.
func (s *Session) Counts() Counts {
	return s.counts
}

// Operations returns a copy of the recorded operation log.
func (s *Session) Operations() []history.Operation {
	return s.hist.Operations()
}

// SampleRecord is one sampled match prepared for rendering: its location,
// surrounding context, and the expanded replacement text. Rendering itself
// (HTML, terminal colors) is a collaborator's job.
type SampleRecord struct {
	DocIndex     int
	MatchOrdinal int // 1-based, for "2/5" style display
	MatchesInDoc int

	ContextBefore   string
	MatchText       string
	ContextAfter    string
	Replacement     string
	TruncatedBefore bool
	TruncatedAfter  bool
}

// Preview is the result of a preview request. When NoMatches is set, the
// remaining fields besides Pattern and Replacement are zero and the pending
// preview was left untouched.
type Preview struct {
	NoMatches       bool
	Pattern         string
	Replacement     string
	TotalMatches    int
	DocsWithMatches int
	Samples         []SampleRecord
}

// PreviewReplace samples the effect of a regex replace against the latest
// document set without mutating anything. On success the operation is cached
// as the pending preview so ApplyLastPreviewed can commit it. Sampling uses
// the session's random source, so consecutive previews of the same pattern
// may show different samples.
func (s *Session) PreviewReplace(ctx context.Context, pattern, replacement string) (*Preview, error) {
	logger := zerolog.Ctx(ctx)

	re, err := history.CompilePattern(pattern)
	if err != nil {
		return nil, err
	}

	matches, total := sampler.FindAll(re, s.latest)
	if total == 0 {
		logger.Debug().Str("pattern", pattern).Msg("preview found no matches")
		return &Preview{NoMatches: true, Pattern: pattern, Replacement: replacement}, nil
	}

	preview := &Preview{
		Pattern:         pattern,
		Replacement:     replacement,
		TotalMatches:    total,
		DocsWithMatches: len(matches),
	}
	for _, ref := range sampler.Sample(matches, s.sampleSize, s.rng) {
		sp := matches[ref.Doc][ref.Index]
		doc := s.latest[ref.Doc]
		window := sampler.Context(doc, sp, s.contextChars)

		expanded := expandReplacement(re, doc, sp, replacement)
		if s.normSpaces {
			expanded = normalize.Spaces(expanded)
		}

		preview.Samples = append(preview.Samples, SampleRecord{
			DocIndex:        ref.Doc,
			MatchOrdinal:    ref.Index + 1,
			MatchesInDoc:    ref.Of,
			ContextBefore:   window.Before,
			MatchText:       sp.Text,
			ContextAfter:    window.After,
			Replacement:     expanded,
			TruncatedBefore: window.TruncatedBefore,
			TruncatedAfter:  window.TruncatedAfter,
		})
	}

	s.pending = &pendingPreview{pattern: pattern, replacement: replacement}

	logger.Debug().
		Str("pattern", pattern).
		Int("total_matches", total).
		Int("docs_with_matches", len(matches)).
		Int("samples", len(preview.Samples)).
		Msg("previewed replace")
	return preview, nil
}

// expandReplacement expands capture references in the replacement for the
// match at sp.
func expandReplacement(re *regexp.Regexp, doc string, sp sampler.Span, replacement string) string {
	m := re.FindStringSubmatchIndex(doc[sp.Start:])
	if m == nil || m[0] != 0 {
		// The span came from this same pattern, so this should not happen;
		// fall back to the raw replacement text.
		return replacement
	}
	return string(re.ExpandString(nil, replacement, doc[sp.Start:], m))
}

// ApplyLastPreviewed commits the pending previewed operation, attaching the
// given note to the recorded history entry. Returns ErrNoPendingPreview when
// nothing was previewed successfully.
func (s *Session) ApplyLastPreviewed(ctx context.Context, note string) error {
	if s.pending == nil {
		return errors.Errorf("preview a replace before applying it: %w", ErrNoPendingPreview)
	}

	op := history.RegexReplace(s.pending.pattern, s.pending.replacement, note)
	if err := s.ApplyOperations(ctx, op); err != nil {
		return err
	}
	s.pending = nil
	return nil
}

// ApplyOperations applies operations to every document in the latest set and
// appends them to the history. Validation is fail-fast: every pattern must
// compile before any document is touched, so a bad operation in a batch
// leaves the session unchanged.
//
// Each operation substitutes globally per document, collapses space runs when
// the session was configured to, and then prunes documents that became empty
// or whitespace-only. Surviving documents are renumbered contiguously from 0;
// prior indices are not preserved.
func (s *Session) ApplyOperations(ctx context.Context, ops ...history.Operation) error {
	logger := zerolog.Ctx(ctx)

	if err := history.Validate(ops...); err != nil {
		return errors.Errorf("validating operations: %w", err)
	}

	before := s.counts
	latest := s.latest
	for _, op := range ops {
		next, err := history.Apply(op, latest, s.normSpaces)
		if err != nil {
			return errors.Errorf("applying %s: %w", op.Kind, err)
		}
		latest = next
	}

	s.latest = latest
	s.hist.Append(ops...)
	s.counts = ComputeCounts(s.latest)

	logger.Debug().
		Int("operations", len(ops)).
		Int("documents", s.counts.Documents).
		Int("pruned", before.Documents-s.counts.Documents).
		Int("tokens", s.counts.Tokens).
		Msg("applied operations")
	return nil
}

// ApplyUnicodeNormalization folds every latest document to ASCII and records
// a normalize_unicode operation. Pruning runs here too, for uniformity with
// regex replaces, even though ASCII folding rarely empties a document.
func (s *Session) ApplyUnicodeNormalization(ctx context.Context) error {
	return s.ApplyOperations(ctx, history.NormalizeUnicode())
}

// RefreshFromHistory rebuilds the latest set by replaying the full recorded
// history onto the original documents. Produces the same latest state as
// continuous live application; that equivalence is the system's core
// correctness contract.
func (s *Session) RefreshFromHistory(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	latest, err := s.hist.ReplayOnto(s.original, s.normSpaces)
	if err != nil {
		return errors.Errorf("replaying history: %w", err)
	}
	s.latest = latest
	s.counts = ComputeCounts(s.latest)

	logger.Debug().
		Int("operations", s.hist.Len()).
		Int("documents", s.counts.Documents).
		Msg("refreshed latest from history")
	return nil
}

// VerifyHistory replays the history onto the original documents and checks
// the result against the live latest state. A divergence is reported as
// ErrReplayMismatch with both checksums; nothing is mutated either way.
func (s *Session) VerifyHistory(ctx context.Context) error {
	replayed, err := s.hist.ReplayOnto(s.original, s.normSpaces)
	if err != nil {
		return errors.Errorf("replaying history: %w", err)
	}

	live := docs.Checksum(s.latest)
	want := docs.Checksum(replayed)
	if live != want {
		return errors.Errorf("live state %s, replayed state %s: %w", live, want, ErrReplayMismatch)
	}

	zerolog.Ctx(ctx).Debug().Str("checksum", live).Msg("history replay verified")
	return nil
}

// ReportUnwantedCharacters tallies every character matched by pattern across
// the latest documents. An empty pattern falls back to the session's
// configured one; when a pattern is supplied it also becomes the session's
// configured pattern for later calls. With neither, the call fails with
// ErrMissingConfiguration. Multi-character matches are tallied
// character-by-character.
func (s *Session) ReportUnwantedCharacters(ctx context.Context, pattern string) (*CharReport, error) {
	if pattern == "" {
		pattern = s.unwantedPattern
	} else {
		s.unwantedPattern = pattern
	}
	if pattern == "" {
		return nil, errors.Errorf("no unwanted-characters pattern supplied: %w", ErrMissingConfiguration)
	}

	re, err := history.CompilePattern(pattern)
	if err != nil {
		return nil, err
	}

	counter := newCharCounter()
	for _, doc := range s.latest {
		for _, match := range re.FindAllString(doc, -1) {
			for _, r := range match {
				counter.add(r)
			}
		}
	}

	report := counter.report()
	zerolog.Ctx(ctx).Debug().
		Str("pattern", pattern).
		Int("total", report.TotalOccurrences).
		Int("unique", len(report.UniqueCharacters)).
		Msg("reported unwanted characters")
	return report, nil
}

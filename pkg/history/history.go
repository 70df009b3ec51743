// Package history maintains the ordered, append-only log of cleaning
// operations and can deterministically replay it against an original document
// set. Replaying the full history against the original documents reproduces
// the latest state bit-for-bit; that property is the contract everything else
// in this module leans on.
package history

import (
	"regexp"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textclean/pkg/docs"
	"github.com/walteh/textclean/pkg/normalize"
)

// ErrInvalidPattern is returned when a regex pattern fails to compile. It is
// surfaced at the point of use (preview, apply, replay, report), never
// silently ignored.
var ErrInvalidPattern = errors.New("invalid regex pattern")

// Kind names an operation variant.
type Kind string

const (
	// KindRegexReplace substitutes every match of a pattern in every document.
	KindRegexReplace Kind = "regex_replace"

	// KindNormalizeUnicode folds every document to ASCII via NFKD
	// decomposition. It carries no parameters.
	KindNormalizeUnicode Kind = "normalize_unicode"
)

// Operation is one named, parameterized transformation. Operations are value
// objects: immutable once appended to a History.
type Operation struct {
	Kind        Kind   `json:"kind"`
	Pattern     string `json:"pattern,omitempty"`
	Replacement string `json:"replacement,omitempty"`

	// Note is free-text analyst commentary. Persistence preserves it exactly.
	Note string `json:"note,omitempty"`
}

// RegexReplace builds a regex_replace operation. Replacement uses the
// engine's capture syntax ($1, ${name}). The pattern is not validated here;
// validation is deferred to application time.
func RegexReplace(pattern, replacement, note string) Operation {
	return Operation{Kind: KindRegexReplace, Pattern: pattern, Replacement: replacement, Note: note}
}

// NormalizeUnicode builds a normalize_unicode operation.
func NormalizeUnicode() Operation {
	return Operation{Kind: KindNormalizeUnicode}
}

// CompilePattern compiles a pattern, wrapping failures in ErrInvalidPattern.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %q: %v: %w", pattern, err, ErrInvalidPattern)
	}
	return re, nil
}

// Validate checks that every operation is applicable: known kind, compilable
// pattern. Used for fail-fast batch application, where nothing is mutated
// unless the whole batch validates.
func Validate(ops ...Operation) error {
	for i, op := range ops {
		switch op.Kind {
		case KindRegexReplace:
			if _, err := CompilePattern(op.Pattern); err != nil {
				return errors.Errorf("operation %d: %w", i, err)
			}
		case KindNormalizeUnicode:
			// No parameters to check.
		default:
			return errors.Errorf("operation %d: unknown operation kind %q", i, op.Kind)
		}
	}
	return nil
}

// History is the ordered log of applied operations. Insertion order is
// application order is replay order. Entries are never edited or removed:
// correcting a mistake means appending a compensating operation, or resetting
// and replaying a corrected history.
type History struct {
	ops []Operation
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// FromOperations creates a history holding the given operations, e.g. after
// loading a persisted session.
func FromOperations(ops []Operation) *History {
	h := &History{ops: make([]Operation, len(ops))}
	copy(h.ops, ops)
	return h
}

// Append adds operations to the end of the log.
func (h *History) Append(ops ...Operation) {
	h.ops = append(h.ops, ops...)
}

// Len reports the number of recorded operations.
func (h *History) Len() int {
	return len(h.ops)
}

// Operations returns a copy of the log in replay order.
func (h *History) Operations() []Operation {
	out := make([]Operation, len(h.ops))
	copy(out, h.ops)
	return out
}

// ReplayOnto applies every recorded operation, in order, to a copy of
// original and returns the result. Each operation uses the same semantics as
// live application: global substitution per document, space normalization
// after each replace when normSpaces is set, and empty-document pruning after
// every operation. The input slice is never mutated.
func (h *History) ReplayOnto(original []string, normSpaces bool) ([]string, error) {
	latest := make([]string, len(original))
	copy(latest, original)

	for i, op := range h.ops {
		next, err := Apply(op, latest, normSpaces)
		if err != nil {
			return nil, errors.Errorf("replaying operation %d (%s): %w", i, op.Kind, err)
		}
		latest = next
	}
	return latest, nil
}

// Apply runs a single operation over a document set and prunes documents that
// end up empty or whitespace-only. It returns a new slice; the input is left
// alone so callers can keep their previous state on error.
func Apply(op Operation, documents []string, normSpaces bool) ([]string, error) {
	out := make([]string, len(documents))
	copy(out, documents)

	switch op.Kind {
	case KindRegexReplace:
		re, err := CompilePattern(op.Pattern)
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i] = re.ReplaceAllString(out[i], op.Replacement)
			if normSpaces {
				out[i] = normalize.Spaces(out[i])
			}
		}
	case KindNormalizeUnicode:
		for i := range out {
			out[i] = normalize.UnicodeToASCII(out[i])
		}
	default:
		return nil, errors.Errorf("unknown operation kind %q", op.Kind)
	}

	return docs.Prune(out), nil
}

// Package sampler enumerates regex matches across a document set and draws
// bounded random samples of them for preview display.
package sampler

import (
	"math/rand"
	"regexp"
	"sort"
)

// Span is a single regex match within one document: byte offsets plus the
// matched substring. Matches are leftmost, non-overlapping, in document
// order, per the engine's standard semantics.
type Span struct {
	Start int
	End   int
	Text  string
}

// Ref points at one match: the document index, the match's ordinal within
// that document (0-based), and how many matches that document has in total.
type Ref struct {
	Doc   int
	Index int
	Of    int
}

// Window is the text immediately surrounding a match. TruncatedBefore and
// TruncatedAfter are true iff there is more document text beyond the window
// in that direction - they report "there was more", not "clipping happened".
// A match at the start of a document has an empty Before and a false
// TruncatedBefore; a match with exactly the window size before it has a full
// Before and a false TruncatedBefore.
type Window struct {
	Before          string
	After           string
	TruncatedBefore bool
	TruncatedAfter  bool
}

// FindAll enumerates every match of re in every document. It returns the
// spans keyed by document index (documents without matches are absent) and
// the total match count across the set.
func FindAll(re *regexp.Regexp, documents []string) (map[int][]Span, int) {
	matches := make(map[int][]Span)
	total := 0
	for i, doc := range documents {
		locs := re.FindAllStringIndex(doc, -1)
		if len(locs) == 0 {
			continue
		}
		spans := make([]Span, 0, len(locs))
		for _, loc := range locs {
			spans = append(spans, Span{Start: loc[0], End: loc[1], Text: doc[loc[0]:loc[1]]})
		}
		matches[i] = spans
		total += len(spans)
	}
	return matches, total
}

// Sample draws up to n match refs from the given matches. When the total is
// at most n, every match is returned in document order. Otherwise a uniform
// random sample of size n is drawn without replacement using rng; the sample
// order is the shuffle order. Consecutive calls see fresh randomness unless
// the caller seeds rng, so tests should assert membership and size, never
// exact content.
func Sample(matches map[int][]Span, n int, rng *rand.Rand) []Ref {
	refs := flatten(matches)
	if len(refs) <= n {
		return refs
	}
	rng.Shuffle(len(refs), func(i, j int) {
		refs[i], refs[j] = refs[j], refs[i]
	})
	return refs[:n]
}

// flatten lists every match in document order.
func flatten(matches map[int][]Span) []Ref {
	docIndices := make([]int, 0, len(matches))
	for i := range matches {
		docIndices = append(docIndices, i)
	}
	sort.Ints(docIndices)

	var refs []Ref
	for _, doc := range docIndices {
		spans := matches[doc]
		for idx := range spans {
			refs = append(refs, Ref{Doc: doc, Index: idx, Of: len(spans)})
		}
	}
	return refs
}

// Context extracts up to window characters of text on either side of the
// span. The window is measured in runes, not bytes, so multi-byte characters
// count once.
func Context(doc string, sp Span, window int) Window {
	before := []rune(doc[:sp.Start])
	after := []rune(doc[sp.End:])

	w := Window{
		TruncatedBefore: len(before) > window,
		TruncatedAfter:  len(after) > window,
	}
	if w.TruncatedBefore {
		before = before[len(before)-window:]
	}
	if w.TruncatedAfter {
		after = after[:window]
	}
	w.Before = string(before)
	w.After = string(after)
	return w
}

package session

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Counts is the derived (documents, tokens, characters) snapshot. Tokens are
// whitespace-separated fields - no real tokenization, by the same argument as
// the original: word tokenizing takes time. Characters are runes, not bytes.
// Recomputed after every mutation of the latest set; used for display deltas,
// never persisted.
type Counts struct {
	Documents  int
	Tokens     int
	Characters int
}

// ComputeCounts builds a counts snapshot for a document set.
func ComputeCounts(documents []string) Counts {
	c := Counts{Documents: len(documents)}
	for _, doc := range documents {
		c.Tokens += len(strings.Fields(doc))
		c.Characters += utf8.RuneCountInString(doc)
	}
	return c
}

// CharCount is one character and its occurrence count.
type CharCount struct {
	Char  string
	Count int
}

// CharReport summarizes occurrences of unwanted characters across the latest
// document set.
type CharReport struct {
	// TotalOccurrences counts every tallied character.
	TotalOccurrences int

	// UniqueCharacters lists the distinct characters in first-encountered
	// order.
	UniqueCharacters []string

	// TopByFrequency holds up to ten characters ranked by count, ties broken
	// by first-encountered order.
	TopByFrequency []CharCount
}

// charCounter tallies characters while remembering encounter order, so ties
// rank the way a stable most-common does.
type charCounter struct {
	counts map[string]int
	order  []string
}

func newCharCounter() *charCounter {
	return &charCounter{counts: make(map[string]int)}
}

func (c *charCounter) add(r rune) {
	s := string(r)
	if _, ok := c.counts[s]; !ok {
		c.order = append(c.order, s)
	}
	c.counts[s]++
}

func (c *charCounter) report() *CharReport {
	report := &CharReport{
		UniqueCharacters: append([]string(nil), c.order...),
	}
	for _, s := range c.order {
		report.TotalOccurrences += c.counts[s]
	}

	ranked := append([]string(nil), c.order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return c.counts[ranked[i]] > c.counts[ranked[j]]
	})
	for _, s := range ranked {
		if len(report.TopByFrequency) == 10 {
			break
		}
		report.TopByFrequency = append(report.TopByFrequency, CharCount{Char: s, Count: c.counts[s]})
	}
	return report
}

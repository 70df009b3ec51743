package sampler

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAll(t *testing.T) {
	re := regexp.MustCompile(`[0-9]+`)

	t.Run("spans_per_document", func(t *testing.T) {
		matches, total := FindAll(re, []string{"a1b22", "no digits", "333"})

		assert.Equal(t, 3, total)
		require.Len(t, matches, 2, "documents without matches should be absent")

		require.Len(t, matches[0], 2)
		assert.Equal(t, Span{Start: 1, End: 2, Text: "1"}, matches[0][0])
		assert.Equal(t, Span{Start: 3, End: 5, Text: "22"}, matches[0][1])

		require.Len(t, matches[2], 1)
		assert.Equal(t, Span{Start: 0, End: 3, Text: "333"}, matches[2][0])
	})

	t.Run("no_matches_anywhere", func(t *testing.T) {
		matches, total := FindAll(re, []string{"abc", "def"})
		assert.Zero(t, total)
		assert.Empty(t, matches)
	})

	t.Run("non_overlapping_leftmost", func(t *testing.T) {
		matches, total := FindAll(regexp.MustCompile(`aa`), []string{"aaaa"})
		assert.Equal(t, 2, total)
		assert.Equal(t, []Span{
			{Start: 0, End: 2, Text: "aa"},
			{Start: 2, End: 4, Text: "aa"},
		}, matches[0])
	})
}

func TestSample(t *testing.T) {
	re := regexp.MustCompile(`x`)
	docs := []string{"x x x", "xx", "", "x"}
	matches, total := FindAll(re, docs)
	require.Equal(t, 6, total)

	t.Run("returns_all_in_document_order_when_under_limit", func(t *testing.T) {
		refs := Sample(matches, 10, rand.New(rand.NewSource(1)))
		assert.Equal(t, []Ref{
			{Doc: 0, Index: 0, Of: 3},
			{Doc: 0, Index: 1, Of: 3},
			{Doc: 0, Index: 2, Of: 3},
			{Doc: 1, Index: 0, Of: 2},
			{Doc: 1, Index: 1, Of: 2},
			{Doc: 3, Index: 0, Of: 1},
		}, refs)
	})

	t.Run("exactly_at_limit_returns_all", func(t *testing.T) {
		refs := Sample(matches, 6, rand.New(rand.NewSource(1)))
		assert.Len(t, refs, 6)
	})

	t.Run("over_limit_samples_without_replacement", func(t *testing.T) {
		refs := Sample(matches, 4, rand.New(rand.NewSource(42)))
		require.Len(t, refs, 4)

		// Membership and uniqueness only: the sample content is random.
		seen := make(map[Ref]bool)
		for _, ref := range refs {
			assert.False(t, seen[ref], "sample must not repeat a match")
			seen[ref] = true

			require.Contains(t, matches, ref.Doc)
			assert.Less(t, ref.Index, len(matches[ref.Doc]))
			assert.Equal(t, len(matches[ref.Doc]), ref.Of)
		}
	})

	t.Run("zero_sample_size", func(t *testing.T) {
		refs := Sample(matches, 0, rand.New(rand.NewSource(1)))
		assert.Empty(t, refs)
	})
}

func TestContext(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		span   Span
		window int
		want   Window
	}{
		{
			name:   "match_at_start_has_empty_untruncated_before",
			doc:    "match tail",
			span:   Span{Start: 0, End: 5, Text: "match"},
			window: 4,
			want:   Window{Before: "", After: " tai", TruncatedBefore: false, TruncatedAfter: true},
		},
		{
			name:   "match_at_end_has_empty_untruncated_after",
			doc:    "head match",
			span:   Span{Start: 5, End: 10, Text: "match"},
			window: 25,
			want:   Window{Before: "head ", After: "", TruncatedBefore: false, TruncatedAfter: false},
		},
		{
			name:   "exactly_window_chars_before_is_not_truncated",
			doc:    "abcdX",
			span:   Span{Start: 4, End: 5, Text: "X"},
			window: 4,
			want:   Window{Before: "abcd", After: "", TruncatedBefore: false, TruncatedAfter: false},
		},
		{
			name:   "more_than_window_chars_before_is_truncated",
			doc:    "abcdeX",
			span:   Span{Start: 5, End: 6, Text: "X"},
			window: 4,
			want:   Window{Before: "bcde", After: "", TruncatedBefore: true, TruncatedAfter: false},
		},
		{
			name:   "window_measured_in_runes",
			doc:    "ééééX",
			span:   Span{Start: 8, End: 9, Text: "X"},
			window: 3,
			want:   Window{Before: "ééé", After: "", TruncatedBefore: true, TruncatedAfter: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Context(tt.doc, tt.span, tt.window)
			assert.Equal(t, tt.want, got)
		})
	}
}

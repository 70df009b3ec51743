package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpaces(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses_double_space",
			in:   "Hello  world",
			want: "Hello world",
		},
		{
			name: "collapses_long_run",
			in:   "a        b",
			want: "a b",
		},
		{
			name: "multiple_runs",
			in:   "a  b   c    d",
			want: "a b c d",
		},
		{
			name: "single_spaces_untouched",
			in:   "a b c",
			want: "a b c",
		},
		{
			name: "leading_and_trailing_runs",
			in:   "  a  ",
			want: " a ",
		},
		{
			name: "tabs_and_newlines_untouched",
			in:   "a\t\tb\n\nc",
			want: "a\t\tb\n\nc",
		},
		{
			name: "empty_string",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Spaces(tt.in)
			assert.Equal(t, tt.want, got)

			// Idempotence holds for every input.
			assert.Equal(t, got, Spaces(got), "Spaces should be idempotent")
		})
	}
}

func TestUnicodeToASCII(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "accented_letters_fold",
			in:   "Café",
			want: "Cafe",
		},
		{
			name: "mixed_accents",
			in:   "naïve jalapeño déjà vu",
			want: "naive jalapeno deja vu",
		},
		{
			name: "plain_ascii_untouched",
			in:   "Hello, world. 123",
			want: "Hello, world. 123",
		},
		{
			name: "undecomposable_runes_dropped",
			in:   "snow☃man", // ☃ has no ASCII decomposition
			want: "snowman",
		},
		{
			name: "cjk_dropped",
			in:   "abc日本語def",
			want: "abcdef",
		},
		{
			name: "compatibility_decomposition",
			in:   "ﬁle", // ﬁ ligature
			want: "file",
		},
		{
			name: "empty_string",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnicodeToASCII(tt.in)
			assert.Equal(t, tt.want, got)

			// Documented as a tested property, not an assumption.
			assert.Equal(t, got, UnicodeToASCII(got), "UnicodeToASCII should be idempotent for these inputs")
		})
	}
}

func TestEquivalents(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "curly_single_quotes",
			in:   "don’t ‘quote’ me",
			want: "don't 'quote' me",
		},
		{
			name: "curly_double_quotes",
			in:   "“quoted”",
			want: `"quoted"`,
		},
		{
			name: "ellipsis",
			in:   "wait…",
			want: "wait...",
		},
		{
			name: "half_ring",
			in:   "taʾer",
			want: "ta'er",
		},
		{
			name: "plain_text_untouched",
			in:   "nothing special",
			want: "nothing special",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equivalents(tt.in))
		})
	}
}

func TestEquivalentsThenFoldPreservesPunctuation(t *testing.T) {
	// Without the equivalents pass, the fold drops curly quotes entirely
	// (the ellipsis survives on its own via compatibility decomposition).
	in := "she said “no…”"
	assert.Equal(t, `she said "no..."`, UnicodeToASCII(Equivalents(in)))
	assert.Equal(t, "she said no...", UnicodeToASCII(in))
}

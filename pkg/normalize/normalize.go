// Package normalize provides the stateless text normalization primitives used
// by the cleaning session: space collapsing, Unicode-to-ASCII folding, and
// punctuation equivalents.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// multiSpaceRe matches runs of two or more space characters. Tabs and
// newlines are deliberately excluded: only U+0020 runs are collapsed.
var multiSpaceRe = regexp.MustCompile(`  +`)

// Spaces replaces every run of two or more consecutive spaces with a single
// space. Idempotent: Spaces(Spaces(s)) == Spaces(s).
func Spaces(s string) string {
	return multiSpaceRe.ReplaceAllString(s, " ")
}

// UnicodeToASCII applies NFKD compatibility decomposition and then removes
// every rune outside the ASCII range. Accented letters degrade to their
// unaccented base form ("Café" becomes "Cafe"); runes with no ASCII
// decomposition are dropped, not substituted.
//
// Idempotence is a tested property rather than a guarantee: exotic
// decompositions can in theory produce non-ASCII output, which a second pass
// would then drop.
func UnicodeToASCII(s string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		// Rune removal cannot fail; keep the input if it somehow does.
		return s
	}
	return out
}

// equivalents maps characters that carry meaning worth keeping through an
// ASCII fold onto their closest ASCII spelling. A plain NFKD fold would drop
// curly quotes and the ellipsis outright.
var equivalents = strings.NewReplacer(
	"’", "'", // right single quotation mark
	"‘", "'", // left single quotation mark
	"ʾ", "'", // modifier letter right half ring
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"…", "...", // horizontal ellipsis
)

// Equivalents replaces typographic punctuation with ASCII equivalents. Run it
// before UnicodeToASCII when quotes and ellipses should survive the fold.
func Equivalents(s string) string {
	return equivalents.Replace(s)
}

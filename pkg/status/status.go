// Package status provides user-facing console feedback for cleaning
// sessions, pairing pterm output for humans with zerolog for debugging.
package status

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/textclean/pkg/history"
	"github.com/walteh/textclean/pkg/session"
)

// 📢 UserLogger provides user-friendly feedback about session changes
type UserLogger struct {
	log zerolog.Logger
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogOperation announces an applied operation
func (u *UserLogger) LogOperation(op history.Operation) {
	var msg string
	switch op.Kind {
	case history.KindRegexReplace:
		msg = fmt.Sprintf("Replaced %q with %q", op.Pattern, op.Replacement)
		if op.Note != "" {
			msg += fmt.Sprintf(" (%s)", op.Note)
		}
	case history.KindNormalizeUnicode:
		msg = "Normalized unicode to ASCII"
	default:
		msg = fmt.Sprintf("Applied %s", op.Kind)
	}

	pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"}).Println(msg)
	u.log.Info().Msg(msg)
}

// 📊 LogCounts prints a counts snapshot, with the delta when a previous
// snapshot is given
func (u *UserLogger) LogCounts(before, after session.Counts) {
	msg := fmt.Sprintf("%d tokens in %d documents (%d characters)",
		after.Tokens, after.Documents, after.Characters)

	if before != (session.Counts{}) && before != after {
		msg += fmt.Sprintf(" (dropped %d documents, %d tokens)",
			before.Documents-after.Documents, before.Tokens-after.Tokens)
	}

	pterm.Info.WithPrefix(pterm.Prefix{Text: "📊"}).Println(msg)
	u.log.Info().
		Int("documents", after.Documents).
		Int("tokens", after.Tokens).
		Int("characters", after.Characters).
		Msg("counts")
}

// 🔍 LogCharReport prints an unwanted-characters report
func (u *UserLogger) LogCharReport(report *session.CharReport, printAll bool) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "🔍"}).Printf(
		"Total of %d occurrences of %d unwanted characters\n",
		report.TotalOccurrences, len(report.UniqueCharacters))

	if printAll && len(report.UniqueCharacters) > 0 {
		pterm.Info.Println(joinQuoted(report.UniqueCharacters))
	}

	if len(report.TopByFrequency) > 0 {
		line := "Most common (up to 10 displayed): "
		for i, cc := range report.TopByFrequency {
			if i > 0 {
				line += ", "
			}
			line += fmt.Sprintf("%q (%d)", cc.Char, cc.Count)
		}
		pterm.Info.Println(line)
	}

	u.log.Info().
		Int("total", report.TotalOccurrences).
		Int("unique", len(report.UniqueCharacters)).
		Msg("unwanted characters")
}

// ✅ LogValidation reports a replay verification result
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
		return
	}
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
	if err != nil {
		pterm.Error.Println(err)
		u.log.Error().Err(err).Msg(description)
	} else {
		u.log.Warn().Msg(description)
	}
}

func joinQuoted(chars []string) string {
	var line string
	for i, c := range chars {
		if i > 0 {
			line += ", "
		}
		line += fmt.Sprintf("%q", c)
	}
	return line
}

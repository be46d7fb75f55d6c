// Package normalize repairs text artifacts left behind by page-level
// document extraction: detached diacritic marks, words split across line
// breaks by hyphenation, and whitespace noise.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Normalizer cleans raw extracted page text. Normalize is idempotent.
type Normalizer struct {
	collapseNewlines bool
}

// New creates a Normalizer. With collapseNewlines set, newlines are folded
// into the single-space whitespace collapse; otherwise line breaks survive
// as single newlines.
func New(collapseNewlines bool) *Normalizer {
	return &Normalizer{collapseNewlines: collapseNewlines}
}

var (
	detachedMarkRe = regexp.MustCompile("([´~¨])\\s?([A-Za-z])")
	hyphenBreakRe  = regexp.MustCompile(`-[ \t]*\r?\n[ \t]*`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	lineBreakRe    = regexp.MustCompile(`[ \t\r]*\n\s*`)
	horizontalRe   = regexp.MustCompile(`[ \t\r]+`)
)

// accented maps a detached mark plus its base letter to the combined
// character. Case-sensitive; pairs outside the table pass through unchanged.
var accented = map[string]string{
	"´a": "á", "´e": "é", "´i": "í", "´o": "ó", "´u": "ú",
	"´A": "Á", "´E": "É", "´I": "Í", "´O": "Ó", "´U": "Ú",
	"~n": "ñ", "~N": "Ñ",
	"¨u": "ü", "¨U": "Ü",
}

// Normalize applies, in order: detached-diacritic repair, line-break
// hyphenation repair, whitespace collapse. Hyphenation repair must run
// before the collapse or the line break marking the split is already gone.
// The diacritic pass runs once more at the end: collapsing can shrink a
// multi-space gap between mark and letter down to the single space the
// repair pattern accepts, and without the second pass the result would not
// be a fixed point.
func (n *Normalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := repairDiacritics(raw)
	s = hyphenBreakRe.ReplaceAllString(s, "")
	if n.collapseNewlines {
		s = whitespaceRe.ReplaceAllString(s, " ")
	} else {
		s = lineBreakRe.ReplaceAllString(s, "\n")
		s = horizontalRe.ReplaceAllString(s, " ")
	}
	s = strings.TrimSpace(s)
	return repairDiacritics(s)
}

func repairDiacritics(s string) string {
	return detachedMarkRe.ReplaceAllStringFunc(s, func(m string) string {
		mark, _ := utf8.DecodeRuneInString(m)
		letter := m[len(m)-1]
		if combined, ok := accented[string(mark)+string(letter)]; ok {
			return combined
		}
		return m
	})
}

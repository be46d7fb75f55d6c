package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRepairsDetachedDiacritics(t *testing.T) {
	n := New(true)

	assert.Equal(t, "Matemática", n.Normalize("Matem´ atica"))
	assert.Equal(t, "Matemática", n.Normalize("Matem´atica"))
	assert.Equal(t, "años", n.Normalize("a~ nos"))
	assert.Equal(t, "pingüino", n.Normalize("ping¨ uino"))
	assert.Equal(t, "ÑOÑO", n.Normalize("~ NO~ NO"))
}

func TestNormalizeLeavesUnknownPairsAlone(t *testing.T) {
	n := New(true)

	// z has no accented form in the table
	assert.Equal(t, "´ z", n.Normalize("´ z"))
	assert.Equal(t, "~x", n.Normalize("~x"))
}

func TestNormalizeRepairsHyphenatedLineBreaks(t *testing.T) {
	n := New(true)

	assert.Equal(t, "documento", n.Normalize("docu-\nmento"))
	assert.Equal(t, "documento completo", n.Normalize("docu- \n   mento completo"))
	assert.Equal(t, "documento", n.Normalize("docu-\r\nmento"))
	// a hyphen with no line break is a real hyphen
	assert.Equal(t, "semi-final", n.Normalize("semi-final"))
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	n := New(true)

	assert.Equal(t, "a b c", n.Normalize("a\t\tb \n\n  c"))
	assert.Equal(t, "a b", n.Normalize("  a b \n"))
}

func TestNormalizePreservesNewlinesWhenConfigured(t *testing.T) {
	n := New(false)

	assert.Equal(t, "line one\nline two", n.Normalize("line   one  \n\n  line\ttwo"))
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, "", New(true).Normalize(""))
	assert.Equal(t, "", New(true).Normalize("   \n\t "))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := New(true)
	inputs := []string{
		"Matem´ atica y F´isica",
		"docu-\nmento con a~ nos",
		"texto  ya \n limpio",
		"´  a mark separated by two spaces",
		"",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), "input %q", in)
	}
}

package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadAllReadsTextFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b.txt", "second document")
	write(t, dir, "a.txt", "first document")

	pages, err := New(dir).LoadAll()

	require.NoError(t, err)
	require.Len(t, pages, 2)
	// lexical order, not directory order
	assert.Equal(t, "a.txt", pages[0].SourceID)
	assert.Equal(t, "first document", pages[0].Text)
	assert.Equal(t, 1, pages[0].PageNumber)
	assert.Equal(t, "b.txt", pages[1].SourceID)
}

func TestLoadAllIgnoresUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "doc.txt", "the document")
	write(t, dir, "notes.md", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	pages, err := New(dir).LoadAll()

	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "doc.txt", pages[0].SourceID)
}

func TestLoadAllSkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "broken.pdf", "this is not a pdf")
	write(t, dir, "empty.txt", "   ")
	write(t, dir, "good.txt", "still readable")

	pages, err := New(dir).LoadAll()

	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "good.txt", pages[0].SourceID)
}

func TestLoadAllEmptyDirectory(t *testing.T) {
	_, err := New(t.TempDir()).LoadAll()

	assert.ErrorIs(t, err, domain.ErrNoDocuments)
}

func TestLoadAllMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope")).LoadAll()

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoDocuments)
}

func TestLoadFileRejectsUnknownExtension(t *testing.T) {
	_, err := LoadFile("document.docx")

	assert.Error(t, err)
}

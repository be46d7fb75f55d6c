// Package loader reads source documents from disk and turns them into
// per-page text for the ingestion pipeline. PDF pages map to pages; plain
// text files count as a single page.
package loader

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"docchat/internal/domain"
)

// Loader walks a documents directory and extracts text from every
// supported file. A file that fails to parse is skipped with a warning so
// one corrupt document cannot block the whole ingestion.
type Loader struct {
	dir string
}

// New creates a loader over the given directory.
func New(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadAll reads every supported file in the directory, in lexical order,
// and returns their pages. It returns domain.ErrNoDocuments when the
// directory yields no readable documents at all.
func (l *Loader) LoadAll() ([]domain.Page, error) {
	infos, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read documents directory %s: %w", l.dir, err)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(info.Name())) {
		case ".pdf", ".txt":
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)

	var pages []domain.Page
	for _, name := range names {
		path := filepath.Join(l.dir, name)
		filePages, err := LoadFile(path)
		if err != nil {
			log.Printf("warning: skipping %s: %v", name, err)
			continue
		}
		pages = append(pages, filePages...)
	}
	if len(pages) == 0 {
		return nil, domain.ErrNoDocuments
	}
	return pages, nil
}

// LoadFile extracts the pages of a single document. The source ID is the
// file's base name.
func LoadFile(path string) ([]domain.Page, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return loadPDF(path)
	case ".txt":
		return loadText(path)
	default:
		return nil, fmt.Errorf("unsupported file type %s", filepath.Ext(path))
	}
}

func loadPDF(path string) ([]domain.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	sourceID := filepath.Base(path)
	var pages []domain.Page
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i, err)
		}
		pages = append(pages, domain.Page{
			Text:       text,
			SourceID:   sourceID,
			PageNumber: i,
		})
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no extractable pages")
	}
	return pages, nil
}

func loadText(path string) ([]domain.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	return []domain.Page{{
		Text:       string(data),
		SourceID:   filepath.Base(path),
		PageNumber: 1,
	}}, nil
}

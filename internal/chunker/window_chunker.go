package chunker

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"docchat/internal/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of characters shared between
// consecutive chunks of the same source.
const DefaultOverlap = 200

// WindowChunker splits page text into overlapping fixed-size windows.
// Split is deterministic and pure.
type WindowChunker struct {
	chunkSize int
	overlap   int
}

// New creates a WindowChunker. Non-positive sizes fall back to defaults;
// an overlap that is not smaller than the chunk size is clamped to a
// quarter of it.
func New(chunkSize, overlap int) *WindowChunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &WindowChunker{chunkSize: chunkSize, overlap: overlap}
}

// Split concatenates the text of each source's pages in order, separated by
// a single space, and slides a window of chunkSize characters advancing by
// chunkSize-overlap per step, so consecutive chunks of one source share
// exactly overlap characters. The final chunk may be shorter. A chunk takes
// the page number of the page containing its start offset. Empty input
// yields no chunks.
func (c *WindowChunker) Split(pages []domain.Page) []domain.Chunk {
	var chunks []domain.Chunk
	for _, group := range groupBySource(pages) {
		chunks = append(chunks, c.splitSource(group)...)
	}
	return chunks
}

// splitSource windows over runes, not bytes: sizes and offsets count
// characters, so multi-byte text neither inflates the chunk count nor gets
// sliced mid-rune at a window boundary.
func (c *WindowChunker) splitSource(pages []domain.Page) []domain.Chunk {
	var sb strings.Builder
	var pageStarts []int // rune offsets
	var pageNums []int
	runeLen := 0
	for _, p := range pages {
		if p.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
			runeLen++
		}
		pageStarts = append(pageStarts, runeLen)
		pageNums = append(pageNums, p.PageNumber)
		sb.WriteString(p.Text)
		runeLen += utf8.RuneCountInString(p.Text)
	}
	if sb.Len() == 0 {
		return nil
	}
	text := []rune(sb.String())

	sourceID := pages[0].SourceID
	step := c.chunkSize - c.overlap
	var chunks []domain.Chunk
	start := 0
	idx := 0
	for start < len(text) {
		end := start + c.chunkSize
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, domain.Chunk{
			ID:         sourceID + ":" + strconv.Itoa(idx),
			Content:    string(text[start:end]),
			SourceID:   sourceID,
			PageNumber: pageAt(pageStarts, pageNums, start),
			Index:      idx,
		})
		if end == len(text) {
			break
		}
		start += step
		idx++
	}
	return chunks
}

// pageAt returns the page number of the page containing the given offset.
func pageAt(starts, nums []int, offset int) int {
	page := nums[0]
	for i, s := range starts {
		if s > offset {
			break
		}
		page = nums[i]
	}
	return page
}

// groupBySource splits the page sequence into runs sharing a source ID,
// preserving order.
func groupBySource(pages []domain.Page) [][]domain.Page {
	var groups [][]domain.Page
	for i := 0; i < len(pages); {
		j := i
		for j < len(pages) && pages[j].SourceID == pages[i].SourceID {
			j++
		}
		groups = append(groups, pages[i:j])
		i = j
	}
	return groups
}

package chat

import (
	"fmt"
	"strings"

	"docuchat-backend/internal/retrieval"
)

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// CitationEntry is one deduplicated source passage with its 1-based display
// position, in order of first appearance.
type CitationEntry struct {
	Position  int
	PassageID string
	Content   string
	Score     float32
}

// SourceDeduplicator collapses repeated passages observed during one stream
// into an ordered citation list. Positions start at 1, increase strictly,
// and are never renumbered within a turn. Not safe for concurrent use; each
// turn owns its own deduplicator.
type SourceDeduplicator struct {
	positionById map[string]int
	entries      []CitationEntry
	lines        []string
}

func NewSourceDeduplicator() *SourceDeduplicator {
	return &SourceDeduplicator{
		positionById: make(map[string]int),
	}
}

// Observe records a passage the first time its id is seen and ignores it
// afterwards.
func (d *SourceDeduplicator) Observe(passageId string, text string) {
	d.observe(passageId, text, 0)
}

// ObservePassage is Observe plus the relevance score for citation metadata.
func (d *SourceDeduplicator) ObservePassage(p retrieval.Passage) {
	d.observe(p.ID, p.Text, p.Score)
}

func (d *SourceDeduplicator) observe(passageId string, text string, score float32) {
	if _, seen := d.positionById[passageId]; seen {
		return
	}

	position := len(d.entries) + 1
	normalized := newlineReplacer.Replace(text)

	d.positionById[passageId] = position
	d.entries = append(d.entries, CitationEntry{
		Position:  position,
		PassageID: passageId,
		Content:   normalized,
		Score:     score,
	})
	d.lines = append(d.lines, fmt.Sprintf("%d: %s", position, normalized))
}

// Render returns the citation lines joined by newline, in first-seen order.
// Idempotent; an empty deduplicator renders an empty string.
func (d *SourceDeduplicator) Render() string {
	return strings.Join(d.lines, "\n")
}

// Entries returns the deduplicated citations in display order.
func (d *SourceDeduplicator) Entries() []CitationEntry {
	return d.entries
}

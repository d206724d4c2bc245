package model

import (
	"strings"
	"unicode/utf8"
)

// Document represents a composed document as an ordered sequence of
// elements. The sequence is append-only: elements can be added but never
// removed, reordered, or replaced.
type Document struct {
	elements []Element
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		elements: make([]Element, 0),
	}
}

// AddElement appends an element to the document. A nil element is ignored.
func (d *Document) AddElement(e Element) {
	if e == nil {
		return
	}
	d.elements = append(d.elements, e)
}

// Len returns the number of elements in the document
func (d *Document) Len() int {
	return len(d.elements)
}

// Elements returns a snapshot of the document's element sequence.
// Mutating the returned slice does not affect the document.
func (d *Document) Elements() []Element {
	out := make([]Element, len(d.elements))
	copy(out, d.elements)
	return out
}

// Render returns the document's textual form: the concatenation of each
// element's rendering, in insertion order. An empty document renders as
// the empty string.
func (d *Document) Render() string {
	var sb strings.Builder
	for _, e := range d.elements {
		sb.WriteString(e.Render())
	}
	return sb.String()
}

// Stats returns composition statistics for the document
func (d *Document) Stats() Stats {
	stats := Stats{
		ByType: make(map[ElementType]int),
	}
	for _, e := range d.elements {
		stats.Elements++
		stats.ByType[e.Type()]++
		if t, ok := e.(*Text); ok {
			stats.TextRunes += utf8.RuneCountInString(t.Content)
		}
	}
	if rendered := d.Render(); rendered != "" {
		stats.Lines = strings.Count(rendered, "\n") + 1
	}
	return stats
}

// Stats holds composition statistics for a document
type Stats struct {
	Elements  int                 // total number of elements
	ByType    map[ElementType]int // element counts keyed by type
	TextRunes int                 // total runes across all Text content
	Lines     int                 // lines in the rendered output, counting a trailing partial line
}

package xml

import (
	"errors"
	"strings"
)

// ErrNotChild is returned by the mutation primitives when the reference
// node is not a direct child of the container.
var ErrNotChild = errors.New("node is not a child of this container")

// Paragraph represents a paragraph in the document
type Paragraph struct {
	Attrs []Attr
	// Properties is the paragraph's w:pPr, kept verbatim
	Properties *RawElement
	// Content maintains the order of runs, hyperlinks and everything else
	Content []ParagraphContent
}

func (p *Paragraph) isBodyElement() {}
func (p *Paragraph) isContainer()   {}

// Children returns the paragraph's content in document order.
func (p *Paragraph) Children() []ParagraphContent {
	return p.Content
}

// IndexOf returns the position of node among the paragraph's children, or -1.
func (p *Paragraph) IndexOf(node ParagraphContent) int {
	return indexOf(p.Content, node)
}

// InsertBefore inserts nodes, in order, immediately before ref.
func (p *Paragraph) InsertBefore(ref ParagraphContent, nodes ...ParagraphContent) error {
	return insertBefore(&p.Content, ref, nodes)
}

// Remove detaches node from the paragraph.
func (p *Paragraph) Remove(node ParagraphContent) error {
	return remove(&p.Content, node)
}

// Runs returns the runs that are direct children of the paragraph.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, c := range p.Content {
		if r, ok := c.(*Run); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

// Hyperlinks returns the hyperlinks that are direct children of the paragraph.
func (p *Paragraph) Hyperlinks() []*Hyperlink {
	var links []*Hyperlink
	for _, c := range p.Content {
		if h, ok := c.(*Hyperlink); ok {
			links = append(links, h)
		}
	}
	return links
}

// GetText returns the concatenated text of all runs in a paragraph,
// including the runs wrapped in hyperlinks.
func (p *Paragraph) GetText() string {
	return contentText(p.Content)
}

func contentText(content []ParagraphContent) string {
	var sb strings.Builder
	for _, c := range content {
		switch n := c.(type) {
		case *Run:
			sb.WriteString(n.GetText())
		case *Hyperlink:
			sb.WriteString(n.GetText())
		}
	}
	return sb.String()
}

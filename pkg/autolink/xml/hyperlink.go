package xml

// Hyperlink represents a w:hyperlink wrapping one or more runs.
type Hyperlink struct {
	// ID is the relationship id (r:id) resolving to the external target.
	// Hyperlinks created in memory have no ID until they are registered.
	ID string
	// Target is the link destination. It is filled for new hyperlinks and
	// for parsed ones once their relationship has been resolved.
	Target  string
	Tooltip string
	History string
	// Attrs holds every other attribute (w:anchor, w:tgtFrame, ...).
	Attrs   []Attr
	Content []ParagraphContent
}

func (h *Hyperlink) isParagraphContent() {}
func (h *Hyperlink) isContainer()        {}

// NewHyperlink creates an unregistered external hyperlink whose tooltip
// repeats the target.
func NewHyperlink(target string, runs ...*Run) *Hyperlink {
	h := &Hyperlink{
		Target:  target,
		Tooltip: target,
		History: "1",
	}
	for _, r := range runs {
		h.Content = append(h.Content, r)
	}
	return h
}

// Children returns the hyperlink's content in document order.
func (h *Hyperlink) Children() []ParagraphContent {
	return h.Content
}

// IndexOf returns the position of node among the hyperlink's children, or -1.
func (h *Hyperlink) IndexOf(node ParagraphContent) int {
	return indexOf(h.Content, node)
}

// InsertBefore inserts nodes, in order, immediately before ref.
func (h *Hyperlink) InsertBefore(ref ParagraphContent, nodes ...ParagraphContent) error {
	return insertBefore(&h.Content, ref, nodes)
}

// Remove detaches node from the hyperlink.
func (h *Hyperlink) Remove(node ParagraphContent) error {
	return remove(&h.Content, node)
}

// Runs returns the runs wrapped by the hyperlink.
func (h *Hyperlink) Runs() []*Run {
	var runs []*Run
	for _, c := range h.Content {
		if r, ok := c.(*Run); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

// IsNew reports whether the hyperlink still needs a relationship.
func (h *Hyperlink) IsNew() bool {
	return h.ID == "" && h.Target != ""
}

// GetText returns the concatenated text of all runs in a hyperlink
func (h *Hyperlink) GetText() string {
	return contentText(h.Content)
}

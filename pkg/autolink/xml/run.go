package xml

import (
	"strings"

	"github.com/jinzhu/copier"
)

// Run represents a run of text sharing one set of formatting properties.
// Runs are the atomic units of formatting in a WordprocessingML document.
type Run struct {
	// Attrs holds the run's own attributes (revision ids and the like).
	Attrs      []Attr
	Properties *RunProperties
	// Content keeps text, tabs, breaks, field characters and drawings in
	// document order.
	Content []RunContent
}

func (r *Run) isParagraphContent() {}

// NewTextRun creates a run holding a single text node. The properties are
// used as given, callers pass a clone when the source must stay untouched.
func NewTextRun(props *RunProperties, text string) *Run {
	return &Run{
		Properties: props,
		Content:    []RunContent{NewText(text)},
	}
}

// Text returns the run's literal text when the run holds exactly one text
// node and nothing else. The boolean is false for runs that carry tabs,
// breaks, drawings, field codes or several text nodes.
func (r *Run) Text() (string, bool) {
	if len(r.Content) != 1 {
		return "", false
	}
	t, ok := r.Content[0].(*Text)
	if !ok {
		return "", false
	}
	return t.Content, true
}

// GetText returns the concatenated text of all text nodes in the run.
func (r *Run) GetText() string {
	var sb strings.Builder
	for _, c := range r.Content {
		if t, ok := c.(*Text); ok {
			sb.WriteString(t.Content)
		}
	}
	return sb.String()
}

// FieldCharType returns the fldCharType ("begin", "separate", "end") of a
// field character held by the run, or "" when there is none.
func (r *Run) FieldCharType() string {
	for _, c := range r.Content {
		raw, ok := c.(*RawElement)
		if !ok || raw.Kind != RawNode || raw.LocalName() != "fldChar" {
			continue
		}
		v, _ := raw.Attr("fldCharType")
		return v
	}
	return ""
}

// RunProperties is the run's formatting bag (w:rPr). Its children are kept
// verbatim and in order; the linkifier never interprets them.
type RunProperties struct {
	Attrs    []Attr
	Children []*RawElement
}

// Clone returns a deep copy sharing no memory with p.
func (p *RunProperties) Clone() *RunProperties {
	if p == nil {
		return nil
	}
	var out RunProperties
	if err := copier.CopyWithOption(&out, p, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched types, which cannot happen here
		panic(err)
	}
	return &out
}

// Get returns the first property with the given local name ("b", "color").
func (p *RunProperties) Get(local string) *RawElement {
	if p == nil {
		return nil
	}
	for _, c := range p.Children {
		if c.Kind == RawNode && c.LocalName() == local {
			return c
		}
	}
	return nil
}

// Equal reports whether both property bags hold the same formatting.
func (p *RunProperties) Equal(other *RunProperties) bool {
	if p == nil || other == nil {
		return p == other
	}
	if !attrsEqual(p.Attrs, other.Attrs) || len(p.Children) != len(other.Children) {
		return false
	}
	for i := range p.Children {
		if !p.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Text represents a w:t text node.
type Text struct {
	// Space is the xml:space attribute; "preserve" keeps leading and
	// trailing whitespace significant.
	Space   string
	Content string
}

func (t *Text) isRunContent() {}

// NewText creates a text node, marking it space-preserving when the
// content starts or ends with whitespace.
func NewText(content string) *Text {
	t := &Text{Content: content}
	if strings.TrimSpace(content) != content {
		t.Space = "preserve"
	}
	return t
}

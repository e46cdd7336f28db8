package xml

import (
	"fmt"
	"strings"
)

// Namespace URIs the linkifier needs to recognise. Transitional and strict
// OOXML use different URIs for the same vocabulary.
const (
	WordprocessingNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	StrictWordprocessingNS = "http://purl.oclc.org/ooxml/wordprocessingml/main"
	RelationshipsNS        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	StrictRelationshipsNS  = "http://purl.oclc.org/ooxml/officeDocument/relationships"
)

// BodyElement represents any element that can appear in a block-level
// container (body, table cell, content control).
type BodyElement interface {
	isBodyElement()
}

// ParagraphContent represents any content that can appear in a paragraph
// or inside a hyperlink.
type ParagraphContent interface {
	isParagraphContent()
}

// RunContent represents any content that can appear in a run.
type RunContent interface {
	isRunContent()
}

// Container is a node whose children are paragraph content. Paragraphs and
// hyperlinks are the only implementations.
type Container interface {
	Children() []ParagraphContent
	IndexOf(node ParagraphContent) int
	InsertBefore(ref ParagraphContent, nodes ...ParagraphContent) error
	Remove(node ParagraphContent) error
	isContainer()
}

// Attr is an attribute with its qualified name kept exactly as written
// in the source ("w:rsidR", "xml:space", "xmlns:w").
type Attr struct {
	Name  string
	Value string
}

// RawKind identifies the kind of node held by a RawElement.
type RawKind int

const (
	RawNode RawKind = iota
	RawText
	RawComment
)

// RawElement represents an XML subtree that is preserved but not
// interpreted. Names keep the prefix used in the source document.
type RawElement struct {
	Kind     RawKind
	Name     string
	Attrs    []Attr
	Text     string
	Children []*RawElement
}

func (r *RawElement) isBodyElement()      {}
func (r *RawElement) isParagraphContent() {}
func (r *RawElement) isRunContent()       {}

// LocalName returns the element name without its prefix.
func (r *RawElement) LocalName() string {
	return localName(r.Name)
}

// Attr returns the value of the attribute with the given local name.
func (r *RawElement) Attr(local string) (string, bool) {
	return findAttr(r.Attrs, local)
}

// InnerText concatenates all text nodes below r.
func (r *RawElement) InnerText() string {
	if r == nil {
		return ""
	}
	if r.Kind == RawText {
		return r.Text
	}
	var sb strings.Builder
	for _, c := range r.Children {
		sb.WriteString(c.InnerText())
	}
	return sb.String()
}

// Equal reports whether two raw trees serialise to the same XML. Nil and
// empty slices compare equal.
func (r *RawElement) Equal(other *RawElement) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.Kind != other.Kind || r.Name != other.Name || r.Text != other.Text {
		return false
	}
	if !attrsEqual(r.Attrs, other.Attrs) || len(r.Children) != len(other.Children) {
		return false
	}
	for i := range r.Children {
		if !r.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

func (r *RawElement) String() string {
	switch r.Kind {
	case RawText:
		return fmt.Sprintf("text(%q)", r.Text)
	case RawComment:
		return fmt.Sprintf("comment(%q)", r.Text)
	}
	return fmt.Sprintf("<%s>", r.Name)
}

func localName(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func prefixOf(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i]
	}
	return ""
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

func findAttr(attrs []Attr, local string) (string, bool) {
	for _, a := range attrs {
		if localName(a.Name) == local && prefixOf(a.Name) != "xmlns" {
			return a.Value, true
		}
	}
	return "", false
}

func attrsEqual(a, b []Attr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// indexOf, insertBefore and remove implement Container over a content slice.
// Comparison is by node identity.

func indexOf(list []ParagraphContent, node ParagraphContent) int {
	for i, c := range list {
		if c == node {
			return i
		}
	}
	return -1
}

func insertBefore(list *[]ParagraphContent, ref ParagraphContent, nodes []ParagraphContent) error {
	at := indexOf(*list, ref)
	if at < 0 {
		return ErrNotChild
	}
	out := make([]ParagraphContent, 0, len(*list)+len(nodes))
	out = append(out, (*list)[:at]...)
	out = append(out, nodes...)
	out = append(out, (*list)[at:]...)
	*list = out
	return nil
}

func remove(list *[]ParagraphContent, node ParagraphContent) error {
	at := indexOf(*list, node)
	if at < 0 {
		return ErrNotChild
	}
	*list = append((*list)[:at], (*list)[at+1:]...)
	return nil
}

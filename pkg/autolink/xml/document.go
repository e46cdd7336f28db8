package xml

import (
	"errors"
	"strconv"
)

// DefaultDeclaration is written when the parsed part carried no XML
// declaration of its own.
const DefaultDeclaration = `version="1.0" encoding="UTF-8" standalone="yes"`

// ErrNoRoot is returned when a part contains no root element.
var ErrNoRoot = errors.New("document has no root element")

// blockNames lists the WordprocessingML elements whose children are
// themselves block-level content.
var blockNames = map[string]bool{
	"document":   true,
	"body":       true,
	"hdr":        true,
	"ftr":        true,
	"footnotes":  true,
	"footnote":   true,
	"endnotes":   true,
	"endnote":    true,
	"comments":   true,
	"comment":    true,
	"tbl":        true,
	"tr":         true,
	"tc":         true,
	"sdt":        true,
	"sdtContent": true,
	"customXml":  true,
}

// Document represents one WordprocessingML part: the main document, a
// header or footer, or the foot- and endnote collections.
type Document struct {
	// Declaration is the content of the <?xml ...?> processing instruction.
	Declaration string
	// Prefix is the prefix bound to the WordprocessingML namespace.
	Prefix string
	// RelPrefix is the prefix bound to the relationships namespace, or ""
	// when the part does not declare it.
	RelPrefix string
	Root      *Block
}

// Block is a block-level container: the body, a table, row or cell, a
// content control, or the root element of a part.
type Block struct {
	// Name is the element's local name ("body", "tbl", "tc").
	Name     string
	Attrs    []Attr
	Children []BodyElement
}

func (b *Block) isBodyElement() {}

// Body returns the w:body of a main document part, or the root itself for
// parts that hold paragraphs directly (headers, footers, notes).
func (d *Document) Body() *Block {
	if d == nil || d.Root == nil {
		return nil
	}
	for _, c := range d.Root.Children {
		if b, ok := c.(*Block); ok && b.Name == "body" {
			return b
		}
	}
	return d.Root
}

// Paragraphs returns every paragraph of the part in document order,
// descending into tables and content controls.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	if d == nil || d.Root == nil {
		return out
	}
	var walk func(b *Block)
	walk = func(b *Block) {
		for _, c := range b.Children {
			switch n := c.(type) {
			case *Paragraph:
				out = append(out, n)
			case *Block:
				walk(n)
			}
		}
	}
	walk(d.Root)
	return out
}

// Hyperlinks returns every hyperlink of the part in document order.
func (d *Document) Hyperlinks() []*Hyperlink {
	var out []*Hyperlink
	for _, p := range d.Paragraphs() {
		out = append(out, p.Hyperlinks()...)
	}
	return out
}

// EnsureRelationshipsNamespace declares the relationships namespace on the
// root element when the part does not already do so, and returns the
// prefix bound to it.
func (d *Document) EnsureRelationshipsNamespace() string {
	if d.RelPrefix != "" {
		return d.RelPrefix
	}
	uri := RelationshipsNS
	if d.isStrict() {
		uri = StrictRelationshipsNS
	}
	prefix := "r"
	for n := 1; d.declares(prefix); n++ {
		prefix = "r" + strconv.Itoa(n)
	}
	d.Root.Attrs = append(d.Root.Attrs, Attr{Name: "xmlns:" + prefix, Value: uri})
	d.RelPrefix = prefix
	return prefix
}

func (d *Document) declares(prefix string) bool {
	for _, a := range d.Root.Attrs {
		if a.Name == "xmlns:"+prefix {
			return true
		}
	}
	return false
}

func (d *Document) isStrict() bool {
	for _, a := range d.Root.Attrs {
		if a.Value == StrictWordprocessingNS {
			return true
		}
	}
	return false
}

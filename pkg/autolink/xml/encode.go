package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// encoder writes the typed tree back out. Every name is emitted as a
// prefixed local name, which encoding/xml passes through untouched.
type encoder struct {
	e *xml.Encoder
	w string
	r string
}

// Marshal serialises a document part, declaration included.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serialises a document part to w.
func Write(w io.Writer, doc *Document) error {
	if doc == nil || doc.Root == nil {
		return ErrNoRoot
	}

	decl := doc.Declaration
	if decl == "" {
		decl = DefaultDeclaration
	}
	if _, err := io.WriteString(w, "<?xml "+decl+"?>\n"); err != nil {
		return err
	}

	enc := &encoder{e: xml.NewEncoder(w), w: doc.Prefix, r: doc.RelPrefix}
	if enc.r == "" {
		enc.r = "r"
	}
	if err := enc.block(doc.Root); err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	return enc.e.Flush()
}

func (enc *encoder) name(local string) string {
	return qualify(enc.w, local)
}

func (enc *encoder) start(name string, attrs []Attr) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	for _, a := range attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	return enc.e.EncodeToken(start)
}

func (enc *encoder) end(name string) error {
	return enc.e.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

func (enc *encoder) block(b *Block) error {
	name := enc.name(b.Name)
	if err := enc.start(name, b.Attrs); err != nil {
		return err
	}
	for _, child := range b.Children {
		var err error
		switch c := child.(type) {
		case *Paragraph:
			err = enc.paragraph(c)
		case *Block:
			err = enc.block(c)
		case *RawElement:
			err = enc.raw(c)
		default:
			err = fmt.Errorf("unexpected body element %T", child)
		}
		if err != nil {
			return err
		}
	}
	return enc.end(name)
}

func (enc *encoder) paragraph(p *Paragraph) error {
	name := enc.name("p")
	if err := enc.start(name, p.Attrs); err != nil {
		return err
	}
	if p.Properties != nil {
		if err := enc.raw(p.Properties); err != nil {
			return err
		}
	}
	if err := enc.content(p.Content); err != nil {
		return err
	}
	return enc.end(name)
}

func (enc *encoder) content(content []ParagraphContent) error {
	for _, child := range content {
		var err error
		switch c := child.(type) {
		case *Run:
			err = enc.run(c)
		case *Hyperlink:
			err = enc.hyperlink(c)
		case *RawElement:
			err = enc.raw(c)
		default:
			err = fmt.Errorf("unexpected paragraph content %T", child)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (enc *encoder) hyperlink(h *Hyperlink) error {
	name := enc.name("hyperlink")
	var attrs []Attr
	if h.ID != "" {
		attrs = append(attrs, Attr{Name: qualify(enc.r, "id"), Value: h.ID})
	}
	attrs = append(attrs, h.Attrs...)
	if h.Tooltip != "" {
		attrs = append(attrs, Attr{Name: enc.name("tooltip"), Value: h.Tooltip})
	}
	if h.History != "" {
		attrs = append(attrs, Attr{Name: enc.name("history"), Value: h.History})
	}

	if err := enc.start(name, attrs); err != nil {
		return err
	}
	if err := enc.content(h.Content); err != nil {
		return err
	}
	return enc.end(name)
}

func (enc *encoder) run(r *Run) error {
	name := enc.name("r")
	if err := enc.start(name, r.Attrs); err != nil {
		return err
	}

	if r.Properties != nil {
		props := enc.name("rPr")
		if err := enc.start(props, r.Properties.Attrs); err != nil {
			return err
		}
		for _, c := range r.Properties.Children {
			if err := enc.raw(c); err != nil {
				return err
			}
		}
		if err := enc.end(props); err != nil {
			return err
		}
	}

	for _, child := range r.Content {
		var err error
		switch c := child.(type) {
		case *Text:
			err = enc.text(c)
		case *RawElement:
			err = enc.raw(c)
		default:
			err = fmt.Errorf("unexpected run content %T", child)
		}
		if err != nil {
			return err
		}
	}
	return enc.end(name)
}

func (enc *encoder) text(t *Text) error {
	name := enc.name("t")
	var attrs []Attr
	if t.Space != "" {
		attrs = append(attrs, Attr{Name: "xml:space", Value: t.Space})
	}
	if err := enc.start(name, attrs); err != nil {
		return err
	}
	if t.Content != "" {
		if err := enc.e.EncodeToken(xml.CharData(t.Content)); err != nil {
			return err
		}
	}
	return enc.end(name)
}

func (enc *encoder) raw(r *RawElement) error {
	switch r.Kind {
	case RawText:
		return enc.e.EncodeToken(xml.CharData(r.Text))
	case RawComment:
		return enc.e.EncodeToken(xml.Comment(r.Text))
	}

	if err := enc.start(r.Name, r.Attrs); err != nil {
		return err
	}
	for _, c := range r.Children {
		if err := enc.raw(c); err != nil {
			return err
		}
	}
	return enc.end(r.Name)
}

package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// decoder builds the typed tree from raw tokens. Raw tokens keep prefixes
// exactly as written, so elements from namespaces this package knows
// nothing about survive a round trip unchanged.
type decoder struct {
	d *xml.Decoder
	// w and r are the prefixes bound to the WordprocessingML and
	// relationships namespaces on the root element.
	w string
	r string
}

// ParseDocument parses a WordprocessingML part.
func ParseDocument(r io.Reader) (*Document, error) {
	p := &decoder{d: xml.NewDecoder(r), w: "w"}
	doc := &Document{}

	for {
		tok, err := p.d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target == "xml" {
				doc.Declaration = strings.TrimSpace(string(t.Inst))
			}
		case xml.StartElement:
			if doc.Root != nil {
				return nil, fmt.Errorf("failed to parse document: unexpected second root <%s>", qname(t.Name))
			}
			p.bindNamespaces(t.Attr)
			root, err := p.block(t)
			if err != nil {
				return nil, fmt.Errorf("failed to parse document: %w", err)
			}
			doc.Root = root
		}
	}

	if doc.Root == nil {
		return nil, ErrNoRoot
	}
	doc.Prefix = p.w
	doc.RelPrefix = p.r
	return doc, nil
}

// ParseDocumentBytes is a convenience wrapper around ParseDocument.
func ParseDocumentBytes(data []byte) (*Document, error) {
	return ParseDocument(bytes.NewReader(data))
}

func (p *decoder) bindNamespaces(attrs []xml.Attr) {
	for _, a := range attrs {
		var prefix string
		switch {
		case a.Name.Space == "xmlns":
			prefix = a.Name.Local
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			prefix = ""
		default:
			continue
		}
		switch a.Value {
		case WordprocessingNS, StrictWordprocessingNS:
			p.w = prefix
		case RelationshipsNS, StrictRelationshipsNS:
			p.r = prefix
		}
	}
}

// is reports whether name is the WordprocessingML element local.
func (p *decoder) is(name xml.Name, local string) bool {
	return name.Space == p.w && name.Local == local
}

// isAttr is like is for attributes; unprefixed attributes never belong to
// a namespace, whatever the default namespace is.
func (p *decoder) isAttr(name xml.Name, prefix, local string) bool {
	return prefix != "" && name.Space == prefix && name.Local == local
}

func (p *decoder) token() (xml.Token, error) {
	tok, err := p.d.RawToken()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

func (p *decoder) block(start xml.StartElement) (*Block, error) {
	b := &Block{Name: start.Name.Local, Attrs: convertAttrs(start.Attr)}
	for {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var el BodyElement
			switch {
			case p.is(t.Name, "p"):
				el, err = p.paragraph(t)
			case t.Name.Space == p.w && blockNames[t.Name.Local]:
				el, err = p.block(t)
			default:
				el, err = p.raw(t)
			}
			if err != nil {
				return nil, err
			}
			b.Children = append(b.Children, el)
		case xml.EndElement:
			return b, nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				b.Children = append(b.Children, &RawElement{Kind: RawText, Text: string(t)})
			}
		case xml.Comment:
			b.Children = append(b.Children, &RawElement{Kind: RawComment, Text: string(t)})
		}
	}
}

func (p *decoder) paragraph(start xml.StartElement) (*Paragraph, error) {
	para := &Paragraph{Attrs: convertAttrs(start.Attr)}
	content, props, err := p.paragraphContent()
	if err != nil {
		return nil, err
	}
	para.Content = content
	para.Properties = props
	return para, nil
}

// paragraphContent reads the children of a paragraph or hyperlink up to
// the closing tag. The w:pPr element, if any, is returned separately.
func (p *decoder) paragraphContent() ([]ParagraphContent, *RawElement, error) {
	var content []ParagraphContent
	var props *RawElement
	for {
		tok, err := p.token()
		if err != nil {
			return nil, nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case p.is(t.Name, "r"):
				run, err := p.run(t)
				if err != nil {
					return nil, nil, err
				}
				content = append(content, run)
			case p.is(t.Name, "hyperlink"):
				link, err := p.hyperlink(t)
				if err != nil {
					return nil, nil, err
				}
				content = append(content, link)
			default:
				raw, err := p.raw(t)
				if err != nil {
					return nil, nil, err
				}
				if p.is(t.Name, "pPr") && props == nil && len(content) == 0 {
					props = raw
					continue
				}
				content = append(content, raw)
			}
		case xml.EndElement:
			return content, props, nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				content = append(content, &RawElement{Kind: RawText, Text: string(t)})
			}
		case xml.Comment:
			content = append(content, &RawElement{Kind: RawComment, Text: string(t)})
		}
	}
}

func (p *decoder) hyperlink(start xml.StartElement) (*Hyperlink, error) {
	h := &Hyperlink{}
	for _, a := range start.Attr {
		switch {
		case p.isAttr(a.Name, p.r, "id"):
			h.ID = a.Value
		case p.isAttr(a.Name, p.w, "tooltip"):
			h.Tooltip = a.Value
		case p.isAttr(a.Name, p.w, "history"):
			h.History = a.Value
		default:
			h.Attrs = append(h.Attrs, convertAttr(a))
		}
	}

	content, props, err := p.paragraphContent()
	if err != nil {
		return nil, err
	}
	if props != nil {
		// w:pPr has no meaning inside a hyperlink; keep it where it was
		content = append([]ParagraphContent{props}, content...)
	}
	h.Content = content
	return h, nil
}

func (p *decoder) run(start xml.StartElement) (*Run, error) {
	r := &Run{Attrs: convertAttrs(start.Attr)}
	for {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case p.is(t.Name, "t"):
				text, err := p.text(t)
				if err != nil {
					return nil, err
				}
				r.Content = append(r.Content, text)
			case p.is(t.Name, "rPr") && r.Properties == nil && len(r.Content) == 0:
				raw, err := p.raw(t)
				if err != nil {
					return nil, err
				}
				r.Properties = &RunProperties{Attrs: raw.Attrs, Children: raw.Children}
			default:
				raw, err := p.raw(t)
				if err != nil {
					return nil, err
				}
				r.Content = append(r.Content, raw)
			}
		case xml.EndElement:
			return r, nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				r.Content = append(r.Content, &RawElement{Kind: RawText, Text: string(t)})
			}
		case xml.Comment:
			r.Content = append(r.Content, &RawElement{Kind: RawComment, Text: string(t)})
		}
	}
}

func (p *decoder) text(start xml.StartElement) (*Text, error) {
	t := &Text{}
	for _, a := range start.Attr {
		if a.Name.Space == "xml" && a.Name.Local == "space" {
			t.Space = a.Value
		}
	}

	var sb strings.Builder
	for {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}

		switch tt := tok.(type) {
		case xml.CharData:
			sb.Write(tt)
		case xml.StartElement:
			return nil, fmt.Errorf("unexpected <%s> inside text", qname(tt.Name))
		case xml.EndElement:
			t.Content = sb.String()
			return t, nil
		}
	}
}

// raw captures the element started by start, and everything below it,
// without interpretation.
func (p *decoder) raw(start xml.StartElement) (*RawElement, error) {
	el := &RawElement{Kind: RawNode, Name: qname(start.Name), Attrs: convertAttrs(start.Attr)}
	for {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := p.raw(t)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, child)
		case xml.EndElement:
			if name := qname(t.Name); name != el.Name {
				return nil, fmt.Errorf("element <%s> closed by </%s>", el.Name, name)
			}
			return el, nil
		case xml.CharData:
			el.Children = append(el.Children, &RawElement{Kind: RawText, Text: string(t)})
		case xml.Comment:
			el.Children = append(el.Children, &RawElement{Kind: RawComment, Text: string(t)})
		}
	}
}

func qname(n xml.Name) string {
	return qualify(n.Space, n.Local)
}

func convertAttr(a xml.Attr) Attr {
	return Attr{Name: qname(a.Name), Value: a.Value}
}

func convertAttrs(attrs []xml.Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, len(attrs))
	for i, a := range attrs {
		out[i] = convertAttr(a)
	}
	return out
}

package autolink

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"

	axml "github.com/benjaminschreck/go-autolink/pkg/autolink/xml"
)

// LinkInfo describes one hyperlink found in a document.
type LinkInfo struct {
	// Part is the package part holding the link, e.g. "word/header1.xml".
	Part string `json:"part"`
	// Text is the visible link text.
	Text string `json:"text"`
	// Target is the external address, resolved through the part's
	// relationships. Empty for internal links.
	Target string `json:"target,omitempty"`
	// Anchor is the bookmark an internal link points to.
	Anchor  string `json:"anchor,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
}

// ListHyperlinks returns every hyperlink in the text parts of a DOCX
// package, in part order and then document order.
func ListHyperlinks(r io.ReaderAt, size int64) ([]LinkInfo, error) {
	reader, err := NewDocxReader(r, size)
	if err != nil {
		return nil, NewDocumentError("open", "", err)
	}

	var links []LinkInfo
	for _, part := range reader.TextParts() {
		found, err := listPartHyperlinks(reader, part)
		if err != nil {
			return nil, err
		}
		links = append(links, found...)
	}
	return links, nil
}

// ListHyperlinksInFile is ListHyperlinks for a file on disk.
func ListHyperlinksInFile(path string) ([]LinkInfo, error) {
	reader, err := DocxReaderFromFile(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}

	var links []LinkInfo
	for _, part := range reader.TextParts() {
		found, err := listPartHyperlinks(reader, part)
		if err != nil {
			return nil, WithContext(err, "list hyperlinks", map[string]interface{}{"file": path})
		}
		links = append(links, found...)
	}
	return links, nil
}

func listPartHyperlinks(reader *DocxReader, part string) ([]LinkInfo, error) {
	data, err := reader.GetPart(part)
	if err != nil {
		return nil, NewDocumentError("read", part, err)
	}

	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, NewDocumentError("parse", part, err)
	}

	nodes, err := xmlquery.QueryAll(root, "//*[local-name()='hyperlink']")
	if err != nil {
		return nil, fmt.Errorf("query hyperlinks in %s: %w", part, err)
	}
	if len(nodes) == 0 {
		return nil, nil
	}

	rels, err := reader.GetRelationships(part)
	if err != nil {
		return nil, NewDocumentError("read relationships", part, err)
	}
	targets := hyperlinkTargets(rels)

	links := make([]LinkInfo, 0, len(nodes))
	for _, node := range nodes {
		info := LinkInfo{
			Part:    part,
			Text:    linkText(node),
			Anchor:  attrValue(node, "anchor", axml.WordprocessingNS, axml.StrictWordprocessingNS),
			Tooltip: attrValue(node, "tooltip", axml.WordprocessingNS, axml.StrictWordprocessingNS),
		}
		if id := attrValue(node, "id", axml.RelationshipsNS, axml.StrictRelationshipsNS); id != "" {
			info.Target = targets[id]
		}
		links = append(links, info)
	}
	return links, nil
}

// linkText joins the w:t descendants of a hyperlink. Field codes and other
// non-text content are ignored.
func linkText(node *xmlquery.Node) string {
	var sb strings.Builder
	for _, t := range xmlquery.Find(node, ".//*[local-name()='t']") {
		sb.WriteString(t.InnerText())
	}
	return sb.String()
}

// attrValue looks an attribute up by local name and namespace, whatever
// prefix the part binds the namespace to.
func attrValue(node *xmlquery.Node, local string, namespaces ...string) string {
	for _, attr := range node.Attr {
		if attr.Name.Local != local {
			continue
		}
		for _, ns := range namespaces {
			if attr.NamespaceURI == ns {
				return attr.Value
			}
		}
	}
	return ""
}

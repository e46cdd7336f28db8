package autolink

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	axml "github.com/benjaminschreck/go-autolink/pkg/autolink/xml"
)

const (
	hyperlinkRelationType       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	strictHyperlinkRelationType = "http://purl.oclc.org/ooxml/officeDocument/relationships/hyperlink"
	packageRelationshipsNS      = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// Relationship is one entry of a part's .rels file.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships is the root element of a .rels file.
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

func parseRelationships(data []byte) ([]Relationship, error) {
	var doc Relationships
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode relationships: %w", err)
	}
	return doc.Relationship, nil
}

// marshalRelationships renders a .rels part from scratch so the package
// namespace is declared exactly once.
func marshalRelationships(rels []Relationship) ([]byte, error) {
	body, err := xml.Marshal(&Relationships{
		Namespace:    packageRelationshipsNS,
		Relationship: rels,
	})
	if err != nil {
		return nil, fmt.Errorf("encode relationships: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// hyperlinkTargets maps relationship ids to targets for the hyperlink
// relationships in rels, transitional or strict.
func hyperlinkTargets(rels []Relationship) map[string]string {
	targets := make(map[string]string)
	for _, rel := range rels {
		switch rel.Type {
		case hyperlinkRelationType, strictHyperlinkRelationType:
			targets[rel.ID] = rel.Target
		}
	}
	return targets
}

// nextRelationshipID returns rIdN where N is one more than the largest
// numeric rId already in use. Ids of any other shape are ignored.
func nextRelationshipID(rels []Relationship) string {
	highest := 0
	for _, rel := range rels {
		digits, ok := strings.CutPrefix(rel.ID, "rId")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(digits); err == nil && n > highest {
			highest = n
		}
	}
	return "rId" + strconv.Itoa(highest+1)
}

// appendExternalLink adds an external hyperlink relationship for target
// and returns it.
func appendExternalLink(rels *[]Relationship, target string) Relationship {
	rel := Relationship{
		ID:         nextRelationshipID(*rels),
		Type:       hyperlinkRelationType,
		Target:     target,
		TargetMode: "External",
	}
	*rels = append(*rels, rel)
	return rel
}

// registerHyperlinks gives every new hyperlink of doc a relationship and
// returns how many were added.
func registerHyperlinks(doc *axml.Document, rels *[]Relationship) int {
	added := 0
	for _, link := range doc.Hyperlinks() {
		if !link.IsNew() {
			continue
		}
		link.ID = appendExternalLink(rels, link.Target).ID
		added++
	}
	if added > 0 {
		doc.EnsureRelationshipsNamespace()
	}
	return added
}

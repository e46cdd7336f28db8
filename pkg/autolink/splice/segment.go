package splice

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SegmentKind classifies a piece of a run's text.
type SegmentKind int

const (
	Plain SegmentKind = iota
	Link
)

func (k SegmentKind) String() string {
	if k == Link {
		return "link"
	}
	return "plain"
}

// Segment is one piece of a run's text: plain text that stays a run, or
// link text that becomes a hyperlinked run targeting URL.
type Segment struct {
	Kind SegmentKind
	Text string
	URL  string
}

// UnrecognizedSegmentError reports detector output that is neither plain
// text nor a simple anchor.
type UnrecognizedSegmentError struct {
	Token string
}

func (e *UnrecognizedSegmentError) Error() string {
	return fmt.Sprintf("unhandled segment in detector output: %s", e.Token)
}

// Decompose turns annotated detector output back into segments. Entities
// are decoded, adjacent plain pieces are merged and empty pieces dropped.
func Decompose(annotated string) ([]Segment, error) {
	var (
		segments []Segment
		inLink   bool
		href     string
		linkText strings.Builder
	)

	z := html.NewTokenizer(strings.NewReader(annotated))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			if inLink {
				return nil, &UnrecognizedSegmentError{Token: "unterminated <a>"}
			}
			return segments, nil

		case html.TextToken:
			text := string(z.Text())
			if inLink {
				linkText.WriteString(text)
				continue
			}
			segments = appendPlain(segments, text)

		case html.StartTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.A || inLink {
				return nil, &UnrecognizedSegmentError{Token: tok.String()}
			}
			href = attr(tok, "href")
			if href == "" {
				return nil, &UnrecognizedSegmentError{Token: tok.String()}
			}
			inLink = true
			linkText.Reset()

		case html.EndTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.A || !inLink {
				return nil, &UnrecognizedSegmentError{Token: tok.String()}
			}
			inLink = false
			if linkText.Len() > 0 {
				segments = append(segments, Segment{Kind: Link, Text: linkText.String(), URL: href})
			}

		default:
			return nil, &UnrecognizedSegmentError{Token: z.Token().String()}
		}
	}
}

func appendPlain(segments []Segment, text string) []Segment {
	if text == "" {
		return segments
	}
	if n := len(segments); n > 0 && segments[n-1].Kind == Plain {
		segments[n-1].Text += text
		return segments
	}
	return append(segments, Segment{Kind: Plain, Text: text})
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Links counts the link segments.
func Links(segments []Segment) int {
	n := 0
	for _, s := range segments {
		if s.Kind == Link {
			n++
		}
	}
	return n
}

// Text concatenates the text of all segments.
func Text(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

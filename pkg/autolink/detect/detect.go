// Package detect finds link-like substrings in plain text.
//
// Detect returns the input annotated with <a href="..."> markup around each
// detected span. The text outside the markup is HTML-escaped, so stripping
// the tags and unescaping always yields the original input. When nothing is
// found the input is returned unchanged, which callers use as the "no
// links" signal.
package detect

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Kind is the pattern class a span was detected by.
type Kind int

const (
	Email Kind = iota
	URL
	IP
	File
)

func (k Kind) String() string {
	switch k {
	case Email:
		return "email"
	case URL:
		return "url"
	case IP:
		return "ip"
	case File:
		return "file"
	}
	return "unknown"
}

// Options selects the pattern classes that are linked.
type Options struct {
	Emails bool
	URLs   bool
	IPs    bool
	Files  bool
}

// AllOptions enables every pattern class.
func AllOptions() Options {
	return Options{Emails: true, URLs: true, IPs: true, Files: true}
}

// Enabled reports whether the class k is switched on.
func (o Options) Enabled(k Kind) bool {
	switch k {
	case Email:
		return o.Emails
	case URL:
		return o.URLs
	case IP:
		return o.IPs
	case File:
		return o.Files
	}
	return false
}

// Any reports whether at least one class is switched on.
func (o Options) Any() bool {
	return o.Emails || o.URLs || o.IPs || o.Files
}

// key is a compact representation used to key cache entries.
func (o Options) key() string {
	b := []byte("----")
	for i, on := range []bool{o.Emails, o.URLs, o.IPs, o.Files} {
		if on {
			b[i] = "euif"[i]
		}
	}
	return string(b)
}

// Span is a detected link inside a text. Start and End are byte offsets.
type Span struct {
	Start int
	End   int
	Text  string
	Href  string
	Kind  Kind
}

// Detector turns plain text into annotated text.
type Detector interface {
	Detect(text string, opts Options) string
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(text string, opts Options) string

// Detect calls f(text, opts).
func (f DetectorFunc) Detect(text string, opts Options) string {
	return f(text, opts)
}

// Default is the package's own detector.
var Default Detector = DetectorFunc(Detect)

// Find returns the non-overlapping spans of text matched by the enabled
// classes, ordered by position. Where candidates overlap the one starting
// first wins, then the longest.
func Find(text string, opts Options) []Span {
	if text == "" || !opts.Any() {
		return nil
	}

	var candidates []Span
	for _, r := range rules {
		if !opts.Enabled(r.kind) {
			continue
		}
		for _, loc := range r.pattern.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			if r.accept != nil && !r.accept(text, start, end) {
				continue
			}
			match := trimTrailing(text[start:end])
			if !meaningful(match) {
				continue
			}
			candidates = append(candidates, Span{
				Start: start,
				End:   start + len(match),
				Text:  match,
				Href:  r.href(match),
				Kind:  r.kind,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Start != candidates[j].Start {
			return candidates[i].Start < candidates[j].Start
		}
		return candidates[i].End > candidates[j].End
	})

	var spans []Span
	last := 0
	for _, c := range candidates {
		if c.Start < last {
			continue
		}
		spans = append(spans, c)
		last = c.End
	}
	return spans
}

// Detect annotates every span Find reports. Text that contains no link is
// returned unchanged.
func Detect(text string, opts Options) string {
	spans := Find(text, opts)
	if len(spans) == 0 {
		return text
	}
	return Annotate(text, spans)
}

// Annotate renders text with the given spans wrapped in anchor markup.
// Spans must be ordered and non-overlapping.
func Annotate(text string, spans []Span) string {
	var sb strings.Builder
	sb.Grow(len(text) + len(spans)*32)

	pos := 0
	for _, s := range spans {
		sb.WriteString(html.EscapeString(text[pos:s.Start]))
		sb.WriteString(`<a href="`)
		sb.WriteString(html.EscapeString(s.Href))
		sb.WriteString(`">`)
		sb.WriteString(html.EscapeString(text[s.Start:s.End]))
		sb.WriteString(`</a>`)
		pos = s.End
	}
	sb.WriteString(html.EscapeString(text[pos:]))
	return sb.String()
}

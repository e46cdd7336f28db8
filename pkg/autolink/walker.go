package autolink

import (
	"github.com/benjaminschreck/go-autolink/pkg/autolink/splice"
	"github.com/benjaminschreck/go-autolink/pkg/autolink/xml"
)

// walker carries the state of one pass over one part.
type walker struct {
	part    string
	splicer *splice.Splicer
	logger  *Logger
	summary *Summary
	// fieldDepth is the number of complex fields currently open. Fields can
	// span paragraphs, so it lives on the walker.
	fieldDepth int
}

// LinkifyDocument linkifies every paragraph of doc in place and reports
// what it did. Run failures are collected in the summary; the returned
// error is only set when there is no tree to walk.
func (e *Engine) LinkifyDocument(doc *xml.Document) (*Summary, error) {
	return e.linkifyPart(doc, "")
}

func (e *Engine) linkifyPart(doc *xml.Document, part string) (*Summary, error) {
	if doc == nil || doc.Body() == nil {
		return nil, ErrTreeUnavailable
	}

	logger := e.logger
	if part != "" {
		logger = logger.WithField("part", part)
	}

	w := &walker{
		part: part,
		splicer: &splice.Splicer{
			Detector: e.cache,
			Options:  e.config.DetectOptions(),
			Logger:   logger,
		},
		logger:  logger,
		summary: newSummary(),
	}
	w.block(doc.Body())

	if part != "" {
		w.summary.Parts[part] = w.summary.Links
	}
	return w.summary, nil
}

func (w *walker) block(b *xml.Block) {
	for _, child := range b.Children {
		switch n := child.(type) {
		case *xml.Paragraph:
			w.paragraph(n)
		case *xml.Block:
			w.block(n)
		case *xml.RawElement:
		default:
			w.logger.Warn("unexpected body element %T", n)
		}
	}
}

func (w *walker) paragraph(p *xml.Paragraph) {
	w.summary.Containers++

	// Splicing replaces entries of p.Content, so iterate over a snapshot.
	content := make([]xml.ParagraphContent, len(p.Content))
	copy(content, p.Content)

	for _, node := range content {
		switch n := node.(type) {
		case *xml.Run:
			w.run(p, n)
		case *xml.Hyperlink:
			for _, r := range n.Runs() {
				w.trackField(r)
				if r.GetText() != "" {
					w.summary.Runs++
					w.summary.Skipped++
				}
			}
		case *xml.RawElement:
		default:
			w.logger.Warn("unexpected paragraph content %T", n)
		}
	}
}

// trackField updates the field depth for fldChar runs and reports whether
// r is one of them.
func (w *walker) trackField(r *xml.Run) bool {
	switch r.FieldCharType() {
	case "begin":
		w.fieldDepth++
		return true
	case "end":
		if w.fieldDepth > 0 {
			w.fieldDepth--
		}
		return true
	case "separate":
		return true
	}
	return false
}

func (w *walker) run(p *xml.Paragraph, r *xml.Run) {
	if w.trackField(r) {
		return
	}

	text := r.GetText()
	if text == "" {
		return
	}
	w.summary.Runs++

	if w.fieldDepth > 0 {
		w.summary.Skipped++
		return
	}

	links, err := w.splice(p, r)
	if err != nil {
		w.summary.Failed++
		w.summary.Errors.Add(&RunError{Part: w.part, Text: text, Cause: err})
		w.logger.WithField("run", text).Warn("run left unchanged: %v", err)
		return
	}
	w.summary.Links += links
}

func (w *walker) splice(p *xml.Paragraph, r *xml.Run) (links int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			links, err = 0, RecoverError(rec)
		}
	}()
	return w.splicer.Splice(p, r)
}

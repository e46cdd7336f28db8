// Package splice rewrites a single text run into plain and hyperlinked
// runs.
//
// The Splicer asks a detector for the link spans in a run's text, turns the
// annotated result into segments, materialises one node per segment with
// an independent copy of the run's formatting, and replaces the run with
// those nodes at its position in the container. Each call either changes
// nothing or performs exactly one replacement.
package splice

import (
	"errors"
	"fmt"

	"github.com/benjaminschreck/go-autolink/pkg/autolink/detect"
	"github.com/benjaminschreck/go-autolink/pkg/autolink/xml"
)

// ErrRunNotInContainer is returned when the run passed to Splice is not a
// direct child of the container.
var ErrRunNotInContainer = errors.New("run is not a child of the container")

// Logger receives debug output about created links. *autolink.Logger
// satisfies it.
type Logger interface {
	Debug(format string, args ...interface{})
}

// Splicer replaces text runs with linked runs.
type Splicer struct {
	Detector detect.Detector
	Options  detect.Options
	// Logger is optional.
	Logger Logger
}

// New creates a splicer using the package detector.
func New(opts detect.Options) *Splicer {
	return &Splicer{Detector: detect.Default, Options: opts}
}

// Splice examines run, a child of container, and replaces it with plain and
// hyperlinked runs when the detector finds links in its text. It returns
// the number of hyperlinks created. Runs already inside a hyperlink, runs
// that are not plain text and empty runs are left alone and yield 0.
func (s *Splicer) Splice(container xml.Container, run *xml.Run) (int, error) {
	if _, linked := container.(*xml.Hyperlink); linked {
		return 0, nil
	}

	text, ok := run.Text()
	if !ok || text == "" {
		return 0, nil
	}

	detector := s.Detector
	if detector == nil {
		detector = detect.Default
	}
	annotated := detector.Detect(text, s.Options)
	if annotated == text {
		return 0, nil
	}

	segments, err := Decompose(annotated)
	if err != nil {
		return 0, err
	}
	if got := Text(segments); got != text {
		return 0, fmt.Errorf("detector output does not reproduce the run text: %q != %q", got, text)
	}

	links := Links(segments)
	if links == 0 {
		return 0, nil
	}

	if container.IndexOf(run) < 0 {
		return 0, ErrRunNotInContainer
	}
	nodes := Materialize(segments, run.Properties)
	if err := container.InsertBefore(run, nodes...); err != nil {
		return 0, err
	}
	if err := container.Remove(run); err != nil {
		return 0, err
	}

	if s.Logger != nil {
		for _, seg := range segments {
			if seg.Kind == Link {
				s.Logger.Debug("created hyperlink %q -> %s", seg.Text, seg.URL)
			}
		}
	}
	return links, nil
}

// Materialize builds one node per segment. Plain segments become runs,
// link segments become hyperlinks wrapping one run. Every run gets its own
// deep copy of style.
func Materialize(segments []Segment, style *xml.RunProperties) []xml.ParagraphContent {
	nodes := make([]xml.ParagraphContent, 0, len(segments))
	for _, seg := range segments {
		if seg.Text == "" {
			continue
		}
		run := xml.NewTextRun(style.Clone(), seg.Text)
		switch seg.Kind {
		case Link:
			nodes = append(nodes, xml.NewHyperlink(seg.URL, run))
		default:
			nodes = append(nodes, run)
		}
	}
	return nodes
}

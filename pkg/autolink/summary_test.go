package autolink

import (
	"errors"
	"testing"
)

func TestSummaryMessage(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    string
	}{
		{"no text", Summary{}, "No text found on the document."},
		{"text without links", Summary{Runs: 4}, "Number of Hyperlinks Created: 0"},
		{"links", Summary{Runs: 4, Links: 2}, "Number of Hyperlinks Created: 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.summary.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummaryMerge(t *testing.T) {
	total := newSummary()

	body := newSummary()
	body.Links, body.Runs, body.Containers = 2, 5, 3
	body.Parts["word/document.xml"] = 2

	header := newSummary()
	header.Links, header.Runs, header.Failed = 1, 2, 1
	header.Parts["word/header1.xml"] = 1
	header.Errors.Add(&RunError{Part: "word/header1.xml", Text: "x", Cause: errors.New("boom")})

	total.merge(body)
	total.merge(header)

	if total.Links != 3 || total.Runs != 7 || total.Containers != 3 || total.Failed != 1 {
		t.Errorf("unexpected totals %+v", total)
	}
	if total.Errors.Len() != 1 || !IsRunError(total.Err()) {
		t.Errorf("errors not merged: %v", total.Err())
	}

	want := "links=3 paragraphs=3 runs=7 skipped=0 failed=1 word/document.xml=2 word/header1.xml=1"
	if got := total.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSummaryErrNil(t *testing.T) {
	var s Summary
	if s.Err() != nil {
		t.Error("zero Summary should have no error")
	}
	if newSummary().Err() != nil {
		t.Error("fresh Summary should have no error")
	}
}

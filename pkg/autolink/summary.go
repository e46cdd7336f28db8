package autolink

import (
	"fmt"
	"sort"
	"strings"
)

// Summary reports what one linkify pass did.
type Summary struct {
	// Links is the number of hyperlinks created.
	Links int
	// Containers is the number of paragraphs visited.
	Containers int
	// Runs is the number of runs carrying text that were examined.
	Runs int
	// Skipped counts runs left alone because they were already linked or
	// part of a field result.
	Skipped int
	// Failed counts runs whose splice returned an error.
	Failed int
	// Parts maps each processed part to the links created in it.
	Parts map[string]int
	// Errors holds one *RunError per failed run.
	Errors *MultiError
}

func newSummary() *Summary {
	return &Summary{
		Parts:  make(map[string]int),
		Errors: NewMultiError(),
	}
}

// Message returns the line shown to the user after a pass.
func (s *Summary) Message() string {
	if s.Runs == 0 {
		return "No text found on the document."
	}
	return fmt.Sprintf("Number of Hyperlinks Created: %d", s.Links)
}

// Err returns the collected run failures, or nil.
func (s *Summary) Err() error {
	if s.Errors == nil {
		return nil
	}
	return s.Errors.Err()
}

// String renders the summary with per-part counts, for logs.
func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "links=%d paragraphs=%d runs=%d skipped=%d failed=%d",
		s.Links, s.Containers, s.Runs, s.Skipped, s.Failed)

	parts := make([]string, 0, len(s.Parts))
	for name := range s.Parts {
		parts = append(parts, name)
	}
	sort.Strings(parts)
	for _, name := range parts {
		fmt.Fprintf(&sb, " %s=%d", name, s.Parts[name])
	}
	return sb.String()
}

func (s *Summary) merge(other *Summary) {
	s.Links += other.Links
	s.Containers += other.Containers
	s.Runs += other.Runs
	s.Skipped += other.Skipped
	s.Failed += other.Failed
	for name, n := range other.Parts {
		s.Parts[name] += n
	}
	if other.Errors != nil {
		for _, err := range other.Errors.Errors() {
			s.Errors.Add(err)
		}
	}
}

package autolink

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/benjaminschreck/go-autolink/internal/atomicfile"
	"github.com/benjaminschreck/go-autolink/pkg/autolink/xml"
)

// Linkify processes a DOCX package read from r and returns the rewritten
// package with a summary of the pass. In dry-run mode, or when nothing was
// linked, the original bytes are returned.
func (e *Engine) Linkify(r io.Reader) (io.Reader, *Summary, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read document: %w", err)
	}

	output, summary, err := e.linkifyBytes(source)
	if err != nil {
		return nil, nil, err
	}
	return bytes.NewReader(output), summary, nil
}

// LinkifyFile processes the DOCX at in and writes the result to out. The
// output is replaced atomically. In dry-run mode nothing is written.
func (e *Engine) LinkifyFile(in, out string) (*Summary, error) {
	source, err := os.ReadFile(in)
	if err != nil {
		return nil, NewDocumentError("read", in, err)
	}

	output, summary, err := e.linkifyBytes(source)
	if err != nil {
		return nil, WithContext(err, "linkify", map[string]interface{}{"file": in})
	}

	if e.config.DryRun {
		return summary, nil
	}
	if err := atomicfile.WriteFile(out, output, 0); err != nil {
		return nil, NewDocumentError("write", out, err)
	}
	return summary, nil
}

func (e *Engine) linkifyBytes(source []byte) ([]byte, *Summary, error) {
	reader, err := NewDocxReader(bytes.NewReader(source), int64(len(source)))
	if err != nil {
		return nil, nil, NewDocumentError("open", "", err)
	}

	summary := newSummary()
	// changed maps part names to their new content, rels parts included.
	changed := make(map[string][]byte)

	for _, part := range reader.TextParts() {
		partSummary, updated, err := e.processPart(reader, part)
		if err != nil {
			if part == mainDocumentPart {
				return nil, nil, err
			}
			e.logger.WithField("part", part).Warn("part skipped: %v", err)
			continue
		}
		summary.merge(partSummary)
		for name, data := range updated {
			changed[name] = data
		}
	}

	e.logger.Info("%s", summary.Message())
	e.logger.Debug("linkify pass: %s", summary)

	if e.config.DryRun || len(changed) == 0 {
		return source, summary, nil
	}

	output, err := writePackage(reader, changed)
	if err != nil {
		return nil, nil, NewDocumentError("write", "", err)
	}
	return output, summary, nil
}

// processPart linkifies one part. It returns the rewritten part and its
// relationships when links were created, and no updates otherwise.
func (e *Engine) processPart(reader *DocxReader, part string) (*Summary, map[string][]byte, error) {
	data, err := reader.GetPart(part)
	if err != nil {
		return nil, nil, NewDocumentError("read", part, err)
	}

	doc, err := xml.ParseDocumentBytes(data)
	if err != nil {
		return nil, nil, NewDocumentError("parse", part, fmt.Errorf("%w: %w", ErrTreeUnavailable, err))
	}

	summary, err := e.linkifyPart(doc, part)
	if err != nil {
		return nil, nil, NewDocumentError("linkify", part, err)
	}
	if summary.Links == 0 {
		return summary, nil, nil
	}

	rels, err := reader.GetRelationships(part)
	if err != nil {
		return nil, nil, NewDocumentError("read relationships", part, err)
	}
	registerHyperlinks(doc, &rels)

	partXML, err := xml.Marshal(doc)
	if err != nil {
		return nil, nil, NewDocumentError("marshal", part, err)
	}
	relsXML, err := marshalRelationships(rels)
	if err != nil {
		return nil, nil, NewDocumentError("marshal", relationshipsPath(part), err)
	}

	return summary, map[string][]byte{
		part:                    partXML,
		relationshipsPath(part): relsXML,
	}, nil
}

// writePackage copies the package, substituting changed parts. Changed
// parts that did not exist before are appended in name order.
func writePackage(reader *DocxReader, changed map[string][]byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	written := make(map[string]bool)
	for _, file := range reader.Files() {
		data, ok := changed[file.Name]
		if !ok {
			if err := w.Copy(file); err != nil {
				return nil, fmt.Errorf("failed to copy %s: %w", file.Name, err)
			}
			continue
		}
		header := &zip.FileHeader{Name: file.Name, Method: zip.Deflate, Modified: file.Modified}
		if err := writePart(w, header, data); err != nil {
			return nil, err
		}
		written[file.Name] = true
	}

	var added []string
	for name := range changed {
		if !written[name] {
			added = append(added, name)
		}
	}
	sort.Strings(added)
	for _, name := range added {
		if err := writePart(w, &zip.FileHeader{Name: name, Method: zip.Deflate}, changed[name]); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip writer: %w", err)
	}
	return buf.Bytes(), nil
}

func writePart(w *zip.Writer, header *zip.FileHeader, data []byte) error {
	fw, err := w.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", header.Name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", header.Name, err)
	}
	return nil
}

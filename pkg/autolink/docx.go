package autolink

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"sort"
)

const mainDocumentPart = "word/document.xml"

// textPartPattern matches the parts whose paragraphs are linkified besides
// the main document.
var textPartPattern = regexp.MustCompile(`^word/(header\d*|footer\d*|footnotes|endnotes)\.xml$`)

// DocxReader gives indexed access to the parts of a WordprocessingML
// package.
type DocxReader struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

// NewDocxReader opens the package held in r. A package without
// word/document.xml is rejected with an error wrapping ErrTreeUnavailable.
func NewDocxReader(r io.ReaderAt, size int64) (*DocxReader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}

	index := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		index[f.Name] = f
	}
	if index[mainDocumentPart] == nil {
		return nil, fmt.Errorf("package has no %s: %w", mainDocumentPart, ErrTreeUnavailable)
	}

	return &DocxReader{reader: zr, Parts: index}, nil
}

// DocxReaderFromFile loads the package stored at path.
func DocxReaderFromFile(path string) (*DocxReader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewDocxReader(bytes.NewReader(data), int64(len(data)))
}

// Files returns the zip entries in archive order.
func (dr *DocxReader) Files() []*zip.File {
	return dr.reader.File
}

// GetPart returns the decompressed bytes of the named part.
func (dr *DocxReader) GetPart(name string) ([]byte, error) {
	f := dr.Parts[name]
	if f == nil {
		return nil, fmt.Errorf("no part named %s", name)
	}
	return readEntry(f)
}

// ListParts returns every part name in lexical order.
func (dr *DocxReader) ListParts() []string {
	names := make([]string, 0, len(dr.Parts))
	for name := range dr.Parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TextParts returns the parts that hold linkable text: the main document
// first, then headers, footers and notes in name order.
func (dr *DocxReader) TextParts() []string {
	parts := []string{mainDocumentPart}
	for _, name := range dr.ListParts() {
		if textPartPattern.MatchString(name) {
			parts = append(parts, name)
		}
	}
	return parts
}

// HasPart reports whether the package contains the named part.
func (dr *DocxReader) HasPart(name string) bool {
	return dr.Parts[name] != nil
}

// GetRelationships returns the relationships declared for a part. A part
// without a .rels file has none.
func (dr *DocxReader) GetRelationships(name string) ([]Relationship, error) {
	f := dr.Parts[relationshipsPath(name)]
	if f == nil {
		return []Relationship{}, nil
	}
	data, err := readEntry(f)
	if err != nil {
		return nil, err
	}
	return parseRelationships(data)
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return data, nil
}

// relationshipsPath maps a part to its relationships part:
// word/document.xml becomes word/_rels/document.xml.rels.
func relationshipsPath(name string) string {
	dir, base := path.Split(name)
	return dir + "_rels/" + base + ".rels"
}

package autolink

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

const (
	wNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`
	rNS = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

	xmlDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

const contentTypesXML = xmlDecl + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const packageRelsXML = xmlDecl + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = xmlDecl + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

// docPart is one entry of a test package.
type docPart struct {
	name    string
	content string
}

func documentXML(body string) string {
	return xmlDecl + `<w:document ` + wNS + ` ` + rNS + `><w:body>` + body + `</w:body></w:document>`
}

// headerXML deliberately omits the relationships namespace.
func headerXML(body string) string {
	return xmlDecl + `<w:hdr ` + wNS + `>` + body + `</w:hdr>`
}

func footerXML(body string) string {
	return xmlDecl + `<w:ftr ` + wNS + ` ` + rNS + `>` + body + `</w:ftr>`
}

func para(runs ...string) string {
	return "<w:p>" + strings.Join(runs, "") + "</w:p>"
}

func textRun(text string) string {
	return `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

func boldRun(text string) string {
	return `<w:r><w:rPr><w:b/><w:color w:val="FF0000"/></w:rPr><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

func fieldRun(kind string) string {
	return `<w:r><w:fldChar w:fldCharType="` + kind + `"/></w:r>`
}

// buildDOCX writes the given parts into an in-memory zip, in order.
func buildDOCX(t *testing.T, parts ...docPart) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, p := range parts {
		f, err := w.Create(p.name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", p.name, err)
		}
		if _, err := io.WriteString(f, p.content); err != nil {
			t.Fatalf("failed to write %s: %v", p.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

// simpleDOCX builds a minimal package whose body is body.
func simpleDOCX(t *testing.T, body string, extra ...docPart) []byte {
	t.Helper()
	parts := []docPart{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/document.xml", documentXML(body)},
	}
	return buildDOCX(t, append(parts, extra...)...)
}

// readPart returns a part of a package, or "" with ok false when the part
// is missing.
func readPart(t *testing.T, data []byte, name string) (string, bool) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("failed to read %s: %v", name, err)
		}
		return string(content), true
	}
	return "", false
}

// quietEngine returns an engine with every class enabled that logs into
// the returned buffer.
func quietEngine(config *Config) (*Engine, *bytes.Buffer) {
	if config == nil {
		config = DefaultConfig()
	}
	buf := new(bytes.Buffer)
	engine := NewWithConfig(config)
	engine.SetLogger(NewLogger(buf, LogDebug))
	return engine, buf
}

// Package xml provides the typed WordprocessingML tree used by go-autolink.
//
// DOCX files are ZIP archives of XML parts. This package parses one part
// (the main document, a header, a footer or the note collections) into a
// small tree that models exactly what hyperlink creation needs, and keeps
// everything else verbatim so that writing the part back changes nothing
// the linkifier did not touch.
//
// # Structure Organization
//
//   - types.go: sealed interfaces (BodyElement, ParagraphContent, RunContent,
//     Container) and RawElement, the lossless holder for opaque XML
//   - document.go: Document and Block (body, tables, rows, cells, content controls)
//   - paragraph.go: Paragraph and the container mutation primitives
//   - hyperlink.go: Hyperlink
//   - run.go: Run, RunProperties and Text
//   - decode.go / encode.go: parsing and serialisation
//
// # Key Concepts
//
// Paragraph and Hyperlink implement Container: they hold ParagraphContent
// and support IndexOf, InsertBefore and Remove with identity semantics.
//
// Run: a contiguous sequence of content with one set of formatting
// properties. A run is text-bearing when its only content is one Text.
//
// RunProperties is opaque. Clone returns a deep copy so that runs derived
// from one original never share formatting state.
//
// # XML Namespaces
//
// Element and attribute names are kept with the prefixes used in the
// source part. The prefixes bound to the WordprocessingML and
// relationships namespaces are detected on the root element, so parts
// using unusual prefixes or strict OOXML are handled as well.
//
// Example:
//
//	doc, err := xml.ParseDocument(r)
//	if err != nil {
//	    return err
//	}
//	for _, p := range doc.Paragraphs() {
//	    fmt.Println(p.GetText())
//	}
package xml

package splice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-autolink/pkg/autolink/xml"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name      string
		annotated string
		expected  []Segment
	}{
		{
			name:      "Plain only",
			annotated: "just text",
			expected:  []Segment{{Kind: Plain, Text: "just text"}},
		},
		{
			name:      "Link between text",
			annotated: `Visit <a href="https://example.com">https://example.com</a> now`,
			expected: []Segment{
				{Kind: Plain, Text: "Visit "},
				{Kind: Link, Text: "https://example.com", URL: "https://example.com"},
				{Kind: Plain, Text: " now"},
			},
		},
		{
			name:      "Adjacent links have no empty plain segment",
			annotated: `<a href="mailto:a@b.com">a@b.com</a><a href="mailto:c@d.com">c@d.com</a>`,
			expected: []Segment{
				{Kind: Link, Text: "a@b.com", URL: "mailto:a@b.com"},
				{Kind: Link, Text: "c@d.com", URL: "mailto:c@d.com"},
			},
		},
		{
			name:      "Empty link text is dropped",
			annotated: `a<a href="http://x.org"></a>b`,
			expected:  []Segment{{Kind: Plain, Text: "ab"}},
		},
		{
			name:      "Entities are decoded",
			annotated: `R&amp;D &lt;x&gt; &#34;q&#34; &#13;<a href="http://a.com/?x=1&amp;y=2">a.com</a>`,
			expected: []Segment{
				{Kind: Plain, Text: "R&D <x> \"q\" \r"},
				{Kind: Link, Text: "a.com", URL: "http://a.com/?x=1&y=2"},
			},
		},
		{
			name:      "Empty input",
			annotated: "",
			expected:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := Decompose(tt.annotated)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, segments)
		})
	}
}

func TestDecomposeUnrecognized(t *testing.T) {
	tests := []struct {
		name      string
		annotated string
	}{
		{"Other tag", `x <b>y</b>`},
		{"Nested anchors", `<a href="http://a.com"><a href="http://b.com">b</a></a>`},
		{"Anchor without href", `<a name="top">x</a>`},
		{"Unterminated anchor", `<a href="http://a.com">a`},
		{"Stray end tag", `x</a>`},
		{"Comment", `x<!-- c -->`},
		{"Self-closing tag", `x<br/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompose(tt.annotated)
			var unrecognized *UnrecognizedSegmentError
			assert.ErrorAs(t, err, &unrecognized)
		})
	}
}

func TestMaterialize(t *testing.T) {
	segments := []Segment{
		{Kind: Plain, Text: "see "},
		{Kind: Link, Text: "example.com", URL: "http://example.com"},
		{Kind: Plain, Text: ""},
	}
	style := &xml.RunProperties{Children: []*xml.RawElement{{Kind: xml.RawNode, Name: "w:b"}}}

	nodes := Materialize(segments, style)
	require.Len(t, nodes, 2, "empty segments produce no node")

	run, ok := nodes[0].(*xml.Run)
	require.True(t, ok)
	text, _ := run.Text()
	assert.Equal(t, "see ", text)
	assert.Equal(t, "preserve", run.Content[0].(*xml.Text).Space)
	assert.True(t, style.Equal(run.Properties))
	assert.NotSame(t, style, run.Properties)

	link, ok := nodes[1].(*xml.Hyperlink)
	require.True(t, ok)
	assert.Equal(t, "http://example.com", link.Target)
	assert.Equal(t, "http://example.com", link.Tooltip)
	assert.True(t, link.IsNew())
	assert.Equal(t, "example.com", link.GetText())

	assert.Nil(t, Materialize(segments[1:2], nil)[0].(*xml.Hyperlink).Runs()[0].Properties)
}

func TestSegmentHelpers(t *testing.T) {
	segments := []Segment{
		{Kind: Plain, Text: "a "},
		{Kind: Link, Text: "b", URL: "u"},
		{Kind: Plain, Text: " c"},
	}
	assert.Equal(t, 1, Links(segments))
	assert.Equal(t, "a b c", Text(segments))
	assert.Equal(t, "link", Link.String())
	assert.Equal(t, "plain", Plain.String())
}

package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.False(t, doc.Had)
	require.Nil(t, doc.FrontMatter)
	require.Equal(t, input, doc.Body)
}

func TestSplit_YAMLFrontmatter(t *testing.T) {
	doc, err := Split([]byte("---\ntitle: Intro\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, []byte("title: Intro\n"), doc.FrontMatter)
	require.Equal(t, []byte("# Title\n"), doc.Body)
}

func TestSplit_EmptyFrontmatter(t *testing.T) {
	doc, err := Split([]byte("---\n---\nbody\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Empty(t, doc.FrontMatter)
	require.Equal(t, []byte("body\n"), doc.Body)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	doc, err := Split([]byte("---\ntitle: Only\n---"))
	require.NoError(t, err)
	require.Equal(t, []byte("title: Only\n"), doc.FrontMatter)
	require.Empty(t, doc.Body)
}

func TestSplit_MissingClosingDelimiter(t *testing.T) {
	_, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestSplit_CRLF(t *testing.T) {
	doc, err := Split([]byte("---\r\ntitle: x\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.Equal(t, []byte("title: x\r\n"), doc.FrontMatter)
	require.Equal(t, []byte("# Title\r\n"), doc.Body)
}

func TestParse(t *testing.T) {
	meta, doc, err := Parse([]byte("---\ntitle: Getting started\norder: 2\nsidebar: false\ntags: [a]\n---\nText\n"))
	require.NoError(t, err)
	require.Equal(t, "Getting started", meta.Title)
	require.NotNil(t, meta.Order)
	require.Equal(t, 2, *meta.Order)
	require.False(t, meta.InSidebar())
	require.Equal(t, []byte("Text\n"), doc.Body)

	meta, _, err = Parse([]byte("plain"))
	require.NoError(t, err)
	require.True(t, meta.InSidebar())

	meta, _, err = Parse([]byte("---\ndraft: true\n---\n"))
	require.NoError(t, err)
	require.False(t, meta.InSidebar())

	_, _, err = Parse([]byte("---\ntitle: [unclosed\n---\n"))
	require.Error(t, err)
}

func TestFields(t *testing.T) {
	fields, err := Fields([]byte("title: x\nextra:\n  a: 1\n"))
	require.NoError(t, err)
	require.Equal(t, "x", fields["title"])
	require.Equal(t, map[string]any{"a": 1}, fields["extra"])

	empty, err := Fields(nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}

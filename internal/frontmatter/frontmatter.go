// Package frontmatter separates YAML front matter from markdown pages.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a front matter
// block with "---" but never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Document is a page split into its raw front matter and markdown body.
type Document struct {
	FrontMatter []byte // raw YAML without delimiters, nil when absent
	Body        []byte
	Had         bool
}

// Meta holds the front matter keys docsite understands. Unknown keys are ignored.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Order       *int   `yaml:"order"`
	Draft       bool   `yaml:"draft"`
	// Sidebar set to false hides the page from generated sidebars.
	Sidebar *bool `yaml:"sidebar"`
}

// InSidebar reports whether the page should appear in a generated sidebar.
func (m Meta) InSidebar() bool {
	return !m.Draft && (m.Sidebar == nil || *m.Sidebar)
}

// Split separates `---` delimited YAML front matter from the body.
// CRLF documents are supported. Content without front matter is returned as the body.
func Split(content []byte) (Document, error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return Document{Body: content}, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return Document{FrontMatter: []byte{}, Body: content[start+len(open):], Had: true}, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line without a trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len("---")
			return Document{FrontMatter: content[start:end], Body: []byte{}, Had: true}, nil
		}
		return Document{}, ErrMissingClosingDelimiter
	}

	return Document{
		FrontMatter: content[start : start+idx+len(nl)],
		Body:        content[start+idx+len(closeSeq):],
		Had:         true,
	}, nil
}

// Parse splits content and decodes the known front matter keys.
func Parse(content []byte) (Meta, Document, error) {
	doc, err := Split(content)
	if err != nil {
		return Meta{}, Document{}, err
	}
	var meta Meta
	if len(doc.FrontMatter) > 0 {
		if err := yaml.Unmarshal(doc.FrontMatter, &meta); err != nil {
			return Meta{}, doc, fmt.Errorf("front matter: %w", err)
		}
	}
	return meta, doc, nil
}

// Fields decodes the raw front matter into a generic map.
func Fields(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(raw) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

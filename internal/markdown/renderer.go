// Package markdown renders and inspects markdown pages with goldmark.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// Renderer converts markdown bodies (front matter removed) to HTML fragments
// according to the site's markdown options.
type Renderer struct {
	md   goldmark.Markdown
	opts config.MarkdownOptions
}

// NewRenderer builds a GFM renderer. Headings receive generated ids so that
// outline anchors resolve.
func NewRenderer(opts config.MarkdownOptions) *Renderer {
	parserOpts := []parser.Option{parser.WithAutoHeadingID()}
	if opts.ImageLazyLoading {
		parserOpts = append(parserOpts, parser.WithASTTransformers(util.Prioritized(lazyImages{}, 100)))
	}
	rendererOpts := []renderer.Option{html.WithUnsafe()}
	if opts.LineNumbers {
		rendererOpts = append(rendererOpts, renderer.WithNodeRenderers(util.Prioritized(&lineNumberRenderer{}, 100)))
	}
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parserOpts...),
			goldmark.WithRendererOptions(rendererOpts...),
		),
		opts: opts,
	}
}

// Options returns the options the renderer was built with.
func (r *Renderer) Options() config.MarkdownOptions { return r.opts }

// Render converts body to HTML.
func (r *Renderer) Render(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
)

func TestRenderLazyImages(t *testing.T) {
	body := []byte("![Diagram](/img/diagram.png)\n")

	lazy, err := NewRenderer(config.MarkdownOptions{ImageLazyLoading: true}).Render(body)
	require.NoError(t, err)
	require.Contains(t, string(lazy), `loading="lazy"`)

	eager, err := NewRenderer(config.MarkdownOptions{}).Render(body)
	require.NoError(t, err)
	require.NotContains(t, string(eager), "loading=")
	require.Contains(t, string(eager), `<img src="/img/diagram.png" alt="Diagram">`)
}

func TestRenderLineNumbers(t *testing.T) {
	body := []byte("```go\nfmt.Println(\"<hi>\")\nreturn\n```\n")

	out, err := NewRenderer(config.MarkdownOptions{LineNumbers: true}).Render(body)
	require.NoError(t, err)
	html := string(out)
	require.Contains(t, html, `<div class="language-go line-numbers-mode">`)
	require.Contains(t, html, `<code class="language-go">`)
	require.Contains(t, html, "&lt;hi&gt;")
	require.Contains(t, html, `<span class="line-number">1</span><br><span class="line-number">2</span><br>`)
	require.NotContains(t, html, `<span class="line-number">3</span>`)

	plain, err := NewRenderer(config.MarkdownOptions{}).Render(body)
	require.NoError(t, err)
	require.NotContains(t, string(plain), "line-numbers-mode")
}

func TestRenderHeadingIDsAndGFM(t *testing.T) {
	out, err := NewRenderer(config.MarkdownOptions{}).Render([]byte("## Getting Started\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	require.Contains(t, string(out), `<h2 id="getting-started">Getting Started</h2>`)
	require.Contains(t, string(out), "<table>")
}

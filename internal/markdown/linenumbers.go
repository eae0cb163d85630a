package markdown

import (
	"strconv"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// lineNumberRenderer renders fenced code blocks with a line number gutter using
// the class names of the VitePress default theme.
type lineNumberRenderer struct{}

func (r *lineNumberRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *lineNumberRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := string(n.Language(source))

	class := "line-numbers-mode"
	if lang != "" {
		class = "language-" + string(util.EscapeHTML([]byte(lang))) + " " + class
	}
	_, _ = w.WriteString(`<div class="` + class + `"><pre><code`)
	if lang != "" {
		_, _ = w.WriteString(` class="language-` + string(util.EscapeHTML([]byte(lang))) + `"`)
	}
	_, _ = w.WriteString(">")

	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(seg.Value(source)))
	}
	_, _ = w.WriteString(`</code></pre><div class="line-numbers-wrapper" aria-hidden="true">`)
	for i := 1; i <= lines.Len(); i++ {
		_, _ = w.WriteString(`<span class="line-number">` + strconv.Itoa(i) + `</span><br>`)
	}
	_, _ = w.WriteString("</div></div>\n")
	return ast.WalkSkipChildren, nil
}

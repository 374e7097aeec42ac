package render

import (
	"bytes"
	"html/template"

	"github.com/alecthomas/chroma/v2/lexers"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// fencedCodeRenderer takes fenced code blocks away from the default HTML
// renderer. Blocks with a language go to the override first, then to chroma;
// everything else becomes a plain pre/code block.
type fencedCodeRenderer struct {
	override  CodeBlockOverride
	highlight renderer.NodeRendererFunc
}

// Register captures the highlighter's fenced code function so it can be used
// as the fallback of this renderer.
func (f *fencedCodeRenderer) Register(kind ast.NodeKind, fn renderer.NodeRendererFunc) {
	if kind == ast.KindFencedCodeBlock {
		f.highlight = fn
	}
}

func (f *fencedCodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, f.render)
}

func (f *fencedCodeRenderer) render(w util.BufWriter, src []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := string(n.Language(src))
	code := blockText(n, src)

	if lang != "" && f.override != nil {
		if out, ok := f.override(lang, code); ok {
			_, _ = w.WriteString(out)
			return ast.WalkSkipChildren, nil
		}
	}
	if lang != "" && f.highlight != nil && lexers.Get(lang) != nil {
		return f.highlight(w, src, node, entering)
	}

	_, _ = w.WriteString("<pre><code>")
	_, _ = w.WriteString(template.HTMLEscapeString(code))
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

func blockText(n *ast.FencedCodeBlock, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return buf.String()
}

// wrapCodeBlock surrounds highlighted blocks with a header carrying the
// language label and a copy button.
func wrapCodeBlock(w util.BufWriter, ctx highlighting.CodeBlockContext, entering bool) {
	if !entering {
		_, _ = w.WriteString("</div>\n")
		return
	}
	lang, _ := ctx.Language()
	_, _ = w.WriteString(`<div class="code-block"><div class="code-block-header"><span class="code-lang">`)
	_, _ = w.WriteString(template.HTMLEscapeString(string(lang)))
	_, _ = w.WriteString(`</span><button type="button" class="copy-btn" aria-label="Copy code">Copy</button></div>`)
}

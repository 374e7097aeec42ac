// Package render turns documentation pages into HTML plus a table of
// contents, and into styled terminal output.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/ziadkadry99/nebula-docs/internal/content"
)

// DefaultStyle is the chroma style used for highlighted code blocks.
const DefaultStyle = "github"

// CodeBlockOverride may replace the HTML of a fenced code block that has a
// language tag. Returning ok=false keeps the default rendering.
type CodeBlockOverride func(lang, code string) (html string, ok bool)

// TOCEntry is one table-of-contents item. Anchor is the heading's element id,
// empty when it could not be matched to a rendered heading.
type TOCEntry struct {
	Text   string `json:"text"`
	Anchor string `json:"anchor,omitempty"`
}

// Rendered is a page ready for display.
type Rendered struct {
	Slug     string        `json:"slug"`
	Title    string        `json:"title"`
	HTML     template.HTML `json:"html"`
	Headings []string      `json:"headings"`
	TOC      []TOCEntry    `json:"toc"`
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCodeBlockOverride installs a per-block override for fenced code.
func WithCodeBlockOverride(fn CodeBlockOverride) Option {
	return func(r *Renderer) { r.override = fn }
}

// WithStyle selects the chroma style for highlighted blocks.
func WithStyle(style string) Option {
	return func(r *Renderer) { r.style = style }
}

// Renderer converts page markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md       goldmark.Markdown
	override CodeBlockOverride
	style    string
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{style: DefaultStyle}
	for _, o := range opts {
		o(r)
	}

	highlighter := highlighting.NewHTMLRenderer(
		highlighting.WithStyle(r.style),
		highlighting.WithWrapperRenderer(wrapCodeBlock),
	)
	fenced := &fencedCodeRenderer{override: r.override}
	highlighter.RegisterFuncs(fenced)

	r.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(fenced, 100)),
		),
	)
	return r
}

// Render converts page to HTML and derives its table of contents.
func (r *Renderer) Render(page *content.Page) (*Rendered, error) {
	if page == nil {
		return nil, fmt.Errorf("render: nil page")
	}

	src := []byte(page.Content)
	doc := r.md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", page.Slug, err)
	}

	headings := ExtractHeadings(page.Content)
	return &Rendered{
		Slug:     page.Slug,
		Title:    page.Title,
		HTML:     template.HTML(buf.String()),
		Headings: headings,
		TOC:      buildTOC(headings, headingAnchors(doc, src)),
	}, nil
}

// ExtractHeadings returns the text of every line that starts with a
// second-level heading marker, in document order.
func ExtractHeadings(markdown string) []string {
	var out []string
	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(line, "## ") {
			out = append(out, strings.TrimPrefix(line, "## "))
		}
	}
	return out
}

type anchor struct {
	text string
	id   string
}

// headingAnchors lists the level-2 headings goldmark produced with their ids.
func headingAnchors(doc ast.Node, src []byte) []anchor {
	var out []anchor
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		if h.Level == 2 {
			var id string
			if v, ok := h.AttributeString("id"); ok {
				if b, ok := v.([]byte); ok {
					id = string(b)
				}
			}
			out = append(out, anchor{text: plainText(h, src), id: id})
		}
		return ast.WalkSkipChildren, nil
	})
	return out
}

func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		default:
			sb.WriteString(plainText(c, src))
		}
	}
	return sb.String()
}

func buildTOC(headings []string, anchors []anchor) []TOCEntry {
	used := make([]bool, len(anchors))
	toc := make([]TOCEntry, 0, len(headings))
	for _, h := range headings {
		entry := TOCEntry{Text: h}
		label := strings.TrimSpace(h)
		for i, a := range anchors {
			if !used[i] && a.text == label {
				used[i] = true
				entry.Anchor = a.id
				break
			}
		}
		toc = append(toc, entry)
	}
	return toc
}

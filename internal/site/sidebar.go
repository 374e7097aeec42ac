package site

import (
	"fmt"
	"html"
	"html/template"
	"net/url"
	"strings"

	"github.com/ziadkadry99/nebula-docs/internal/shell"
)

// sidebarHTML renders the navigation as nested <ul><li> HTML. Groups carry
// their node id so the client can toggle them; expanded groups get the
// "expanded" class and the active leaf gets "active".
func sidebarHTML(items []shell.NavItem) template.HTML {
	var b strings.Builder
	renderItems(&b, items)
	return template.HTML(b.String())
}

func renderItems(b *strings.Builder, items []shell.NavItem) {
	if len(items) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, item := range items {
		if item.IsGroup() {
			expanded := ""
			if item.Open {
				expanded = " expanded"
			}
			fmt.Fprintf(b, `<li class="dir%s" data-id="%s"><span class="dir-toggle">%s</span>`+"\n",
				expanded, html.EscapeString(item.ID), html.EscapeString(item.Title))
			renderItems(b, item.Children)
			b.WriteString("</li>\n")
			continue
		}
		activeClass := ""
		if item.Active {
			activeClass = ` class="active"`
		}
		fmt.Fprintf(b, `<li class="file"><a href="%s"%s>%s</a></li>`+"\n",
			html.EscapeString(docPath(item.Slug)), activeClass, html.EscapeString(item.Title))
	}
	b.WriteString("</ul>\n")
}

// docPath is the URL of the page with slug.
func docPath(slug string) string {
	parts := strings.Split(slug, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return "/docs/" + strings.Join(parts, "/")
}

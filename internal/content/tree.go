package content

import (
	"sort"
	"strings"
)

// BuildTree derives a navigation tree from page slugs: one group per
// directory, leaves for pages. Top-level pages come first in catalogue
// order; inside a group, pages precede subgroups and both are alphabetical.
func BuildTree(pages []*Page) []*NavNode {
	root := &NavNode{ID: "root"}
	groups := map[string]*NavNode{"": root}

	for _, p := range pages {
		parts := strings.Split(p.Slug, "/")
		current := root
		for i := range parts[:len(parts)-1] {
			dir := strings.Join(parts[:i+1], "/")
			g, ok := groups[dir]
			if !ok {
				g = &NavNode{ID: "group:" + dir, Title: formatName(parts[i])}
				groups[dir] = g
				current.Children = append(current.Children, g)
			}
			current = g
		}
		current.Children = append(current.Children, &NavNode{ID: p.Slug, Title: p.Title, Slug: p.Slug})
	}

	for dir, g := range groups {
		if dir != "" {
			sortNodes(g.Children)
		}
	}
	// Root keeps catalogue order for pages so the default page leads.
	sort.SliceStable(root.Children, func(i, j int) bool {
		a, b := root.Children[i], root.Children[j]
		if a.IsGroup() != b.IsGroup() {
			return !a.IsGroup()
		}
		if a.IsGroup() {
			return a.Title < b.Title
		}
		return false
	})
	return root.Children
}

func sortNodes(nodes []*NavNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].IsGroup() != nodes[j].IsGroup() {
			return !nodes[i].IsGroup()
		}
		return nodes[i].Title < nodes[j].Title
	})
}

// formatName converts a slug segment to a human-readable title:
// "getting-started" becomes "Getting Started".
func formatName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

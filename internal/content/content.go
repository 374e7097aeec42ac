// Package content is the read-only catalogue of documentation pages and the
// navigation tree that links them.
package content

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCatalogue is returned when a store is built without pages.
	ErrEmptyCatalogue = errors.New("content catalogue is empty")
	// ErrDuplicateSlug is returned when two pages share a slug.
	ErrDuplicateSlug = errors.New("duplicate page slug")
	// ErrUnresolvedLeaf is returned when a navigation leaf names an unknown slug.
	ErrUnresolvedLeaf = errors.New("navigation leaf does not resolve to a page")
	// ErrInvalidNode is returned for nodes that are neither a group nor a leaf.
	ErrInvalidNode = errors.New("navigation node must have either a slug or children")
)

// Page is one documentation page. Pages are immutable once loaded.
type Page struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Content  string `json:"content"`
	ParentID string `json:"parent_id,omitempty"`
}

// NavNode is a node of the navigation tree: a group (children, no slug) or a
// leaf (slug, no children).
type NavNode struct {
	ID       string     `json:"id" yaml:"id"`
	Title    string     `json:"title" yaml:"title"`
	Slug     string     `json:"slug,omitempty" yaml:"slug,omitempty"`
	Children []*NavNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsGroup reports whether the node groups other nodes.
func (n *NavNode) IsGroup() bool { return len(n.Children) > 0 }

// Store serves pages by slug and the navigation tree.
type Store struct {
	pages  []*Page
	bySlug map[string]*Page
	nav    []*NavNode
}

// New builds a Store. The first page is the default page returned for
// unknown slugs. Every navigation leaf must resolve to exactly one page.
func New(pages []*Page, nav []*NavNode) (*Store, error) {
	if len(pages) == 0 {
		return nil, ErrEmptyCatalogue
	}

	s := &Store{
		pages:  pages,
		bySlug: make(map[string]*Page, len(pages)),
		nav:    nav,
	}
	for _, p := range pages {
		if _, dup := s.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSlug, p.Slug)
		}
		s.bySlug[p.Slug] = p
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the navigation tree against the page catalogue.
func (s *Store) Validate() error {
	var walk func(nodes []*NavNode) error
	walk = func(nodes []*NavNode) error {
		for _, n := range nodes {
			switch {
			case n.IsGroup() && n.Slug != "":
				return fmt.Errorf("%w: %q has both", ErrInvalidNode, n.ID)
			case n.IsGroup():
				if err := walk(n.Children); err != nil {
					return err
				}
			case n.Slug == "":
				return fmt.Errorf("%w: %q has neither", ErrInvalidNode, n.ID)
			default:
				if _, ok := s.bySlug[n.Slug]; !ok {
					return fmt.Errorf("%w: %q -> %q", ErrUnresolvedLeaf, n.ID, n.Slug)
				}
			}
		}
		return nil
	}
	return walk(s.nav)
}

// Page returns the page whose slug matches exactly, or the default page when
// nothing matches. It never returns nil.
func (s *Store) Page(slug string) *Page {
	if p, ok := s.bySlug[slug]; ok {
		return p
	}
	return s.pages[0]
}

// Lookup returns the page for slug and whether it exists.
func (s *Store) Lookup(slug string) (*Page, bool) {
	p, ok := s.bySlug[slug]
	return p, ok
}

// DefaultPage returns the page served for unknown slugs.
func (s *Store) DefaultPage() *Page { return s.pages[0] }

// Pages returns all pages in catalogue order.
func (s *Store) Pages() []*Page { return s.pages }

// NavigationTree returns the ordered navigation roots.
func (s *Store) NavigationTree() []*NavNode { return s.nav }

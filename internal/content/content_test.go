package content

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogue(t *testing.T) {
	s := Default()

	assert.Equal(t, "introduction", s.DefaultPage().Slug)
	assert.Len(t, s.NavigationTree(), 4)
	require.NoError(t, s.Validate())

	p, ok := s.Lookup("core-concepts/facilitator")
	require.True(t, ok)
	assert.Equal(t, "Facilitator", p.Title)
}

func TestPageExactMatch(t *testing.T) {
	s := Default()
	p := s.Page("components/card")
	assert.Equal(t, "cards", p.ID)
}

func TestPageFallbackIsDeterministic(t *testing.T) {
	s := Default()
	def := s.DefaultPage()

	for _, slug := range []string{"", "nope", "components", "COMPONENTS/BUTTON", "components/button/"} {
		assert.Same(t, def, s.Page(slug), "slug %q", slug)
		assert.Same(t, s.Page(slug), s.Page(slug), "slug %q", slug)
	}

	_, ok := s.Lookup("nope")
	assert.False(t, ok)
}

func TestNewRejectsEmptyCatalogue(t *testing.T) {
	_, err := New(nil, nil)
	assert.True(t, errors.Is(err, ErrEmptyCatalogue))
}

func TestNewRejectsDuplicateSlug(t *testing.T) {
	pages := []*Page{{ID: "a", Slug: "x"}, {ID: "b", Slug: "x"}}
	_, err := New(pages, nil)
	assert.True(t, errors.Is(err, ErrDuplicateSlug))
}

func TestNewRejectsDanglingLeaf(t *testing.T) {
	pages := []*Page{{ID: "a", Slug: "a"}}
	nav := []*NavNode{{ID: "g", Title: "G", Children: []*NavNode{{ID: "b", Slug: "missing"}}}}
	_, err := New(pages, nav)
	assert.True(t, errors.Is(err, ErrUnresolvedLeaf))
}

func TestNewRejectsAmbiguousNodes(t *testing.T) {
	pages := []*Page{{ID: "a", Slug: "a"}}

	_, err := New(pages, []*NavNode{{ID: "empty"}})
	assert.True(t, errors.Is(err, ErrInvalidNode))

	both := &NavNode{ID: "both", Slug: "a", Children: []*NavNode{{ID: "a", Slug: "a"}}}
	_, err = New(pages, []*NavNode{both})
	assert.True(t, errors.Is(err, ErrInvalidNode))
}

func TestLoadFSDerivesTree(t *testing.T) {
	fsys := fstest.MapFS{
		"zeta.md":                      {Data: []byte("# Zeta\n")},
		"introduction.md":              {Data: []byte("# Welcome\n\n## Start\n")},
		"guides/deploy.md":             {Data: []byte("# Deploying\n")},
		"guides/advanced/tuning.md":    {Data: []byte("no heading here\n")},
		"api-reference/rest-client.md": {Data: []byte("# REST Client\n")},
	}

	s, err := LoadFS(fsys)
	require.NoError(t, err)

	assert.Equal(t, "introduction", s.DefaultPage().Slug)
	assert.Equal(t, "Welcome", s.DefaultPage().Title)

	p, ok := s.Lookup("guides/advanced/tuning")
	require.True(t, ok)
	assert.Equal(t, "Tuning", p.Title)
	assert.Equal(t, "guides/advanced", p.ParentID)

	nav := s.NavigationTree()
	require.Len(t, nav, 4)
	assert.Equal(t, "introduction", nav[0].Slug)
	assert.Equal(t, "zeta", nav[1].Slug)
	assert.Equal(t, "Api Reference", nav[2].Title)
	assert.Equal(t, "Guides", nav[3].Title)

	guides := nav[3]
	require.Len(t, guides.Children, 2)
	assert.Equal(t, "guides/deploy", guides.Children[0].Slug)
	assert.Equal(t, "Advanced", guides.Children[1].Title)
	assert.True(t, guides.Children[1].IsGroup())
}

func TestLoadFSUsesNavFile(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md": {Data: []byte("# A\n")},
		"b.md": {Data: []byte("# B\n")},
		"nav.yml": {Data: []byte(`
- id: start
  title: Start Here
  children:
    - id: b
      title: Bee
      slug: b
    - id: a
      title: Ay
      slug: a
`)},
	}

	s, err := LoadFS(fsys)
	require.NoError(t, err)

	nav := s.NavigationTree()
	require.Len(t, nav, 1)
	assert.Equal(t, "Start Here", nav[0].Title)
	assert.Equal(t, "b", nav[0].Children[0].Slug)
}

func TestLoadFSRejectsBrokenNavFile(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md":    {Data: []byte("# A\n")},
		"nav.yml": {Data: []byte("- id: x\n  slug: missing\n")},
	}
	_, err := LoadFS(fsys)
	assert.True(t, errors.Is(err, ErrUnresolvedLeaf))
}

func TestLoadFSEmpty(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{"readme.txt": {Data: []byte("hi")}})
	assert.True(t, errors.Is(err, ErrEmptyCatalogue))
}

func TestFormatName(t *testing.T) {
	assert.Equal(t, "Getting Started", formatName("getting-started"))
	assert.Equal(t, "Core Concepts", formatName("core_concepts"))
	assert.Equal(t, "X", formatName("x"))
}

func TestLoadFSSkipsExcludedDirs(t *testing.T) {
	fsys := fstest.MapFS{
		"introduction.md":               {Data: []byte("# Intro\n")},
		"node_modules/pkg/README.md":    {Data: []byte("# Pkg\n")},
		".github/ISSUE_TEMPLATE/bug.md": {Data: []byte("# Bug\n")},
		"guides/.drafts/wip.md":         {Data: []byte("# WIP\n")},
		"guides/deploy.md":              {Data: []byte("# Deploy\n")},
	}

	store, err := LoadFS(fsys)
	require.NoError(t, err)

	var slugs []string
	for _, p := range store.Pages() {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"introduction", "guides/deploy"}, slugs)
}

func TestLoadFSOnlyExcludedIsEmpty(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{"vendor/x.md": {Data: []byte("# X\n")}})
	assert.ErrorIs(t, err, ErrEmptyCatalogue)
}

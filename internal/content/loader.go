package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// NavFile is the optional file in a content directory that spells out the
// navigation tree. Without it the tree mirrors the directory layout.
const NavFile = "nav.yml"

// excludedDirs are never searched for pages.
var excludedDirs = []string{
	"node_modules",
	"vendor",
	"dist",
	"build",
}

// defaultSlugs are preferred, in order, as the default page of a loaded directory.
var defaultSlugs = []string{"introduction", "index"}

// LoadDir builds a Store from every markdown file under dir.
func LoadDir(dir string) (*Store, error) {
	return LoadFS(os.DirFS(dir))
}

// excluded reports whether p sits in a hidden or excluded directory.
func excluded(p string) bool {
	dirs := strings.Split(path.Dir(p), "/")
	for _, d := range dirs {
		if d == "." {
			continue
		}
		if strings.HasPrefix(d, ".") {
			return true
		}
		for _, excl := range excludedDirs {
			if strings.EqualFold(d, excl) {
				return true
			}
		}
	}
	return false
}

// LoadFS builds a Store from every markdown file in fsys.
func LoadFS(fsys fs.FS) (*Store, error) {
	paths, err := doublestar.Glob(fsys, "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("listing markdown files: %w", err)
	}
	paths = slices.DeleteFunc(paths, excluded)
	if len(paths) == 0 {
		return nil, ErrEmptyCatalogue
	}
	sort.Strings(paths)

	pages := make([]*Page, 0, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		slug := strings.TrimSuffix(p, ".md")
		parent := path.Dir(slug)
		if parent == "." {
			parent = ""
		}
		pages = append(pages, &Page{
			ID:       slug,
			Title:    extractTitle(string(data), p),
			Slug:     slug,
			Content:  string(data),
			ParentID: parent,
		})
	}
	pages = moveDefaultFirst(pages)

	nav, err := loadNav(fsys)
	if err != nil {
		return nil, err
	}
	if nav == nil {
		nav = BuildTree(pages)
	}

	return New(pages, nav)
}

func loadNav(fsys fs.FS) ([]*NavNode, error) {
	data, err := fs.ReadFile(fsys, NavFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", NavFile, err)
	}
	var nav []*NavNode
	if err := yaml.Unmarshal(data, &nav); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", NavFile, err)
	}
	return nav, nil
}

func moveDefaultFirst(pages []*Page) []*Page {
	for _, want := range defaultSlugs {
		for i, p := range pages {
			if p.Slug == want {
				out := make([]*Page, 0, len(pages))
				out = append(out, p)
				out = append(out, pages[:i]...)
				return append(out, pages[i+1:]...)
			}
		}
	}
	return pages
}

// extractTitle returns the first H1 of the markdown, or the file name.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return formatName(strings.TrimSuffix(path.Base(relPath), ".md"))
}

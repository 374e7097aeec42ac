package shell

import (
	"github.com/ziadkadry99/nebula-docs/internal/assistant"
	"github.com/ziadkadry99/nebula-docs/internal/content"
	"github.com/ziadkadry99/nebula-docs/internal/render"
	"github.com/ziadkadry99/nebula-docs/internal/theme"
)

// NavItem is a navigation node decorated with session state.
type NavItem struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug,omitempty"`
	Active   bool      `json:"active,omitempty"`
	Open     bool      `json:"open,omitempty"`
	Children []NavItem `json:"children,omitempty"`
}

// IsGroup reports whether the item groups other items.
func (n NavItem) IsGroup() bool { return len(n.Children) > 0 }

// View is everything a surface needs to draw the shell.
type View struct {
	SiteName         string             `json:"site_name"`
	Theme            theme.Preference   `json:"theme"`
	RootClass        string             `json:"root_class"`
	ActiveSlug       string             `json:"active_slug"`
	Nav              []NavItem          `json:"nav"`
	Page             *render.Rendered   `json:"page"`
	MobileMenuOpen   bool               `json:"mobile_menu_open"`
	Scrim            bool               `json:"scrim"`
	ScrollLocked     bool               `json:"scroll_locked"`
	AssistantEnabled bool               `json:"assistant_enabled"`
	Assistant        assistant.Snapshot `json:"assistant"`
	Shortcut         string             `json:"shortcut"`
}

// View renders the active page and collects the session state.
func (s *Shell) View() (*View, error) {
	page := s.ActivePage()
	rendered, err := s.renderer.Render(page)
	if err != nil {
		return nil, err
	}

	// The sidebar highlights the requested slug, so an unknown one marks
	// nothing even though the default page is shown.
	active := s.nav.ActiveSlug()
	menu := s.nav.MobileMenuOpen()
	return &View{
		SiteName:         s.siteName,
		Theme:            s.theme.Current(),
		RootClass:        s.theme.RootClass(),
		ActiveSlug:       active,
		Nav:              s.navItems(s.store.NavigationTree(), active),
		Page:             rendered,
		MobileMenuOpen:   menu,
		Scrim:            menu,
		ScrollLocked:     s.scroll.Locked(),
		AssistantEnabled: s.enabled,
		Assistant:        s.assistant.Snapshot(),
		Shortcut:         AssistantShortcut.String(),
	}, nil
}

func (s *Shell) navItems(nodes []*content.NavNode, active string) []NavItem {
	items := make([]NavItem, 0, len(nodes))
	for _, n := range nodes {
		item := NavItem{ID: n.ID, Title: n.Title, Slug: n.Slug}
		if n.IsGroup() {
			item.Open = s.nav.GroupOpen(n.ID)
			item.Children = s.navItems(n.Children, active)
		} else {
			item.Active = n.Slug == active
		}
		items = append(items, item)
	}
	return items
}

// Package navigation holds the per-session navigation state: the active page,
// the mobile drawer and which sidebar groups are collapsed.
package navigation

import "sync"

// State is the navigation state of one display session. There is always an
// active page; the zero slug is only reachable when the default page has one.
type State struct {
	mu         sync.RWMutex
	activeSlug string
	mobileOpen bool
	collapsed  map[string]bool
}

// New creates a State positioned on defaultSlug with every group expanded.
func New(defaultSlug string) *State {
	return &State{
		activeSlug: defaultSlug,
		collapsed:  make(map[string]bool),
	}
}

// Navigate makes slug the active page. A navigation triggered from the mobile
// drawer also closes the drawer.
func (s *State) Navigate(slug string, fromMobile bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeSlug = slug
	if fromMobile {
		s.mobileOpen = false
	}
}

// ActiveSlug returns the slug of the active page.
func (s *State) ActiveSlug() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeSlug
}

// ToggleGroup flips the expansion of a group and returns the new state.
func (s *State) ToggleGroup(nodeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collapsed[nodeID] {
		delete(s.collapsed, nodeID)
		return true
	}
	s.collapsed[nodeID] = true
	return false
}

// GroupOpen reports whether a group is expanded. Groups start expanded.
func (s *State) GroupOpen(nodeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.collapsed[nodeID]
}

func (s *State) OpenMobileMenu() {
	s.mu.Lock()
	s.mobileOpen = true
	s.mu.Unlock()
}

// CloseMobileMenu closes the drawer. Clicking the scrim lands here.
func (s *State) CloseMobileMenu() {
	s.mu.Lock()
	s.mobileOpen = false
	s.mu.Unlock()
}

func (s *State) MobileMenuOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mobileOpen
}

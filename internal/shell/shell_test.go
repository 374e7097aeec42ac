package shell

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ziadkadry99/nebula-docs/internal/assistant"
	"github.com/ziadkadry99/nebula-docs/internal/keys"
	"github.com/ziadkadry99/nebula-docs/internal/llm/llmtest"
	"github.com/ziadkadry99/nebula-docs/internal/prefs"
	"github.com/ziadkadry99/nebula-docs/internal/theme"
)

func newShell(t *testing.T, client *llmtest.Client) *Shell {
	t.Helper()
	s := New(Config{
		SiteName:         "Nebula UI",
		Client:           client,
		AssistantEnabled: true,
		AssistantOptions: []assistant.Option{assistant.WithFocusDelay(time.Millisecond)},
		Prefs:            prefs.ForScope(prefs.NewMemoryBackend(), "visitor"),
	})
	t.Cleanup(s.Close)
	return s
}

var modK = keys.Event{Key: "k", Meta: true}

func TestNewStartsOnDefaultPage(t *testing.T) {
	s := newShell(t, nil)
	assert.Equal(t, "introduction", s.ActivePage().Slug)
	assert.False(t, s.Assistant().IsOpen())
	assert.False(t, s.ScrollLocked())
}

func TestShortcutTogglesAssistant(t *testing.T) {
	s := newShell(t, nil)

	assert.True(t, s.HandleKey(modK))
	assert.True(t, s.Assistant().IsOpen())
	assert.True(t, s.ScrollLocked())

	assert.True(t, s.HandleKey(keys.Event{Key: "K", Ctrl: true}))
	assert.False(t, s.Assistant().IsOpen())
	assert.False(t, s.ScrollLocked())

	assert.False(t, s.HandleKey(keys.Event{Key: "k"}), "plain k is left to the page")
	assert.False(t, s.Assistant().IsOpen())
}

func TestShortcutDisabledWithoutAssistant(t *testing.T) {
	s := New(Config{AssistantEnabled: false})
	defer s.Close()

	assert.False(t, s.HandleKey(modK))
	s.OpenAssistant()
	assert.False(t, s.Assistant().IsOpen())
	assert.Equal(t, 0, s.keymap.Len())
}

func TestCloseReleasesEverything(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate := make(chan struct{})
	client := llmtest.New(llmtest.Reply{Fragments: []string{"x"}, Gate: gate})
	s := New(Config{Client: client, AssistantEnabled: true})

	s.OpenAssistant()
	require.True(t, s.ScrollLocked())
	require.True(t, s.Assistant().Send("hello"))

	s.Close()
	s.Assistant().Wait()

	assert.False(t, s.ScrollLocked())
	assert.False(t, s.Assistant().IsOpen())
	assert.False(t, s.Assistant().Pending())
	assert.Equal(t, 0, s.keymap.Len())
	assert.False(t, s.HandleKey(modK), "shortcut is unbound after close")

	s.Close()
}

func TestCloseEndsAssistantSubscriptions(t *testing.T) {
	s := New(Config{AssistantEnabled: true})
	_, events, cancel := s.Assistant().Watch()
	defer cancel()

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for range events {
		}
	}()

	s.Close()
	select {
	case <-drained:
	case <-time.After(time.Second):
		t.Fatal("subscription still open after close")
	}
}

func TestNavigateRegroundsOpenAssistant(t *testing.T) {
	s := newShell(t, llmtest.Fragments("a"))
	s.OpenAssistant()
	require.True(t, s.Assistant().Send("q"))
	s.Assistant().Wait()
	require.Len(t, s.Assistant().Transcript(), 3)

	s.Navigate("core-concepts/facilitator", false)

	msgs := s.Assistant().Transcript()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, `"Facilitator"`)
}

func TestNavigateFromMobileClosesMenu(t *testing.T) {
	s := newShell(t, nil)
	s.OpenMobileMenu()

	v, err := s.View()
	require.NoError(t, err)
	assert.True(t, v.MobileMenuOpen)
	assert.True(t, v.Scrim)

	s.Navigate("components/button", true)
	v, err = s.View()
	require.NoError(t, err)
	assert.False(t, v.Scrim)
	assert.Equal(t, "components/button", v.Page.Slug)
}

func TestViewMarksActiveAndCollapsed(t *testing.T) {
	s := newShell(t, nil)
	s.Navigate("components/card", false)
	assert.False(t, s.ToggleGroup("group-3"))

	v, err := s.View()
	require.NoError(t, err)
	require.Len(t, v.Nav, 4)

	components := v.Nav[2]
	assert.Equal(t, "Components", components.Title)
	assert.True(t, components.Open)
	assert.False(t, components.Children[0].Active)
	assert.True(t, components.Children[1].Active)
	assert.False(t, v.Nav[3].Open)

	assert.Equal(t, "Mod+K", v.Shortcut)
	assert.True(t, v.AssistantEnabled)
	assert.Equal(t, "Card", v.Page.Title)
}

func TestViewUnknownSlugShowsDefault(t *testing.T) {
	s := newShell(t, nil)
	s.Navigate("does/not/exist", false)

	v, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, "introduction", v.Page.Slug)
	assert.Equal(t, "does/not/exist", v.ActiveSlug)
	for _, section := range v.Nav {
		for _, item := range section.Children {
			assert.False(t, item.Active, "%s highlighted for an unknown slug", item.Slug)
		}
	}
}

func TestThemeToggleReflectedInView(t *testing.T) {
	backend := prefs.NewMemoryBackend()
	s := New(Config{Prefs: prefs.ForScope(backend, "v1"), SystemTheme: func() (theme.Preference, bool) { return theme.Dark, true }})
	defer s.Close()

	v, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, v.Theme)
	assert.Equal(t, "dark", v.RootClass)

	assert.Equal(t, theme.Light, s.ToggleTheme())
	v, err = s.View()
	require.NoError(t, err)
	assert.Equal(t, "", v.RootClass)

	again := New(Config{Prefs: prefs.ForScope(backend, "v1")})
	defer again.Close()
	assert.Equal(t, theme.Light, again.Theme().Current(), "preference survives across sessions")
}

func TestInputKeysGoThroughShell(t *testing.T) {
	client := llmtest.Fragments("ok")
	s := newShell(t, client)
	s.OpenAssistant()
	s.Assistant().SetInput("hi")

	assert.False(t, s.HandleInputKey(keys.Event{Key: "Enter", Shift: true}))
	assert.True(t, s.HandleInputKey(keys.Event{Key: "Enter"}))
	s.Assistant().Wait()
	assert.Equal(t, []string{"hi"}, client.Sent())

	assert.True(t, s.HandleInputKey(modK))
	assert.False(t, s.Assistant().IsOpen())
}

func TestKeymapScopedBindings(t *testing.T) {
	k := NewKeymap()
	var a, b int32
	unbindA := k.Bind(keys.MustParse("Mod+K"), func(keys.Event) { atomic.AddInt32(&a, 1) })
	k.Bind(keys.MustParse("Mod+K"), func(keys.Event) { atomic.AddInt32(&b, 1) })

	assert.True(t, k.Dispatch(modK))
	unbindA()
	unbindA()
	assert.True(t, k.Dispatch(modK))

	assert.Equal(t, int32(1), atomic.LoadInt32(&a))
	assert.Equal(t, int32(2), atomic.LoadInt32(&b))
	assert.Equal(t, 1, k.Len())
}

func TestScrollLockDepth(t *testing.T) {
	var l ScrollLock
	l.Release()
	assert.False(t, l.Locked())
	l.Acquire()
	l.Acquire()
	l.Release()
	assert.True(t, l.Locked())
	l.Release()
	assert.False(t, l.Locked())
}

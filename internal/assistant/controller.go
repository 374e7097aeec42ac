// Package assistant implements the chat panel that answers questions about
// the page being read. The Controller owns the transcript and streams model
// responses into it.
package assistant

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/nebula-docs/internal/content"
	"github.com/ziadkadry99/nebula-docs/internal/keys"
	"github.com/ziadkadry99/nebula-docs/internal/llm"
	"github.com/ziadkadry99/nebula-docs/internal/logging"
)

const (
	DefaultName        = "Nebula AI"
	DefaultSiteName    = "Nebula UI"
	DefaultTemperature = 0.3
	// DefaultFocusDelay lets the panel's open transition finish before the
	// input is focused.
	DefaultFocusDelay = 100 * time.Millisecond
)

var errNoClient = errors.New("no chat client configured")

var submitChord = keys.MustParse("Enter")

// ScrollLock suspends scrolling of the page behind the panel.
type ScrollLock interface {
	Acquire()
	Release()
}

// Option configures a Controller.
type Option func(*Controller)

// WithName sets the assistant persona name.
func WithName(name string) Option { return func(c *Controller) { c.name = name } }

// WithSiteName sets the product the assistant documents.
func WithSiteName(site string) Option { return func(c *Controller) { c.site = site } }

// WithModel overrides the client's default model.
func WithModel(model string) Option { return func(c *Controller) { c.model = model } }

func WithTemperature(t float64) Option { return func(c *Controller) { c.temperature = t } }

func WithFocusDelay(d time.Duration) Option { return func(c *Controller) { c.focusDelay = d } }

// WithScrollLock registers the lock held while the panel is open.
func WithScrollLock(l ScrollLock) Option { return func(c *Controller) { c.scroll = l } }

func WithLogger(l *zap.Logger) Option { return func(c *Controller) { c.logger = l } }

// Controller is the assistant panel of one display session. All methods are
// safe for concurrent use; at most one request is in flight at a time.
type Controller struct {
	client      llm.ChatClient
	name        string
	site        string
	model       string
	temperature float64
	focusDelay  time.Duration
	scroll      ScrollLock
	logger      *zap.Logger

	mu         sync.Mutex
	open       bool
	page       *content.Page
	transcript []Message
	nextID     int64
	pending    bool
	input      string
	// epoch changes whenever the session is reset or closed; responses
	// carrying an older epoch are discarded.
	epoch  uint64
	cancel context.CancelFunc
	focus  *time.Timer

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
	shut    bool

	inflight sync.WaitGroup
}

// New creates a closed Controller. client may be nil, in which case every
// send fails with the apology message.
func New(client llm.ChatClient, opts ...Option) *Controller {
	c := &Controller{
		client:      client,
		name:        DefaultName,
		site:        DefaultSiteName,
		temperature: DefaultTemperature,
		focusDelay:  DefaultFocusDelay,
		subs:        make(map[int]chan Event),
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = logging.OrNop(c.logger).Named("assistant")
	return c
}

// Open shows the panel with a fresh transcript grounded in page. Opening an
// open panel starts a new session as well.
func (c *Controller) Open(page *content.Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openLocked(page)
}

// Close hides the panel. An in-flight request is cancelled and its output
// discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

// Toggle closes an open panel or opens a closed one on page.
func (c *Controller) Toggle(page *content.Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open {
		c.closeLocked()
		return
	}
	c.openLocked(page)
}

// Shutdown closes the panel and ends every subscription. Later subscribers
// get a closed channel.
func (c *Controller) Shutdown() {
	c.Close()

	c.subMu.Lock()
	defer c.subMu.Unlock()
	c.shut = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

// openLocked and closeLocked move the scroll lock together with the open
// flag, so the lock is held exactly while the panel is open.
func (c *Controller) openLocked(page *content.Page) {
	wasOpen := c.open
	c.resetLocked(page)
	c.open = true
	if !wasOpen && c.scroll != nil {
		c.scroll.Acquire()
	}
	c.scheduleFocusLocked()
	c.publishLocked(EventOpened)
}

func (c *Controller) closeLocked() {
	if !c.open {
		return
	}
	c.open = false
	c.abortLocked()
	c.stopFocusLocked()
	c.transcript = nil
	c.input = ""
	if c.scroll != nil {
		c.scroll.Release()
	}
	c.publishLocked(EventClosed)
}

// SetContext tells the controller which page is active. An open panel on a
// different page starts a new session for the new page.
func (c *Controller) SetContext(page *content.Page) {
	c.mu.Lock()
	if !c.open {
		c.page = page
		c.mu.Unlock()
		return
	}
	if samePage(c.page, page) {
		c.mu.Unlock()
		return
	}
	c.resetLocked(page)
	c.scheduleFocusLocked()
	c.publishLocked(EventOpened)
	c.mu.Unlock()
}

func samePage(a, b *content.Page) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Slug == b.Slug
}

// Send asks the model about text. It reports false, changing nothing, when
// text is blank, a request is pending or the panel is closed.
func (c *Controller) Send(text string) bool {
	return c.send(text, false)
}

// SetInput replaces the input buffer.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return
	}
	c.input = text
}

// Input returns the input buffer.
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// Submit sends the input buffer and clears it when the send is accepted.
func (c *Controller) Submit() bool {
	return c.send("", true)
}

// HandleInputKey applies a key pressed in the panel's input. Enter submits;
// Enter with Shift is left to the input. The result reports whether the key
// was consumed.
func (c *Controller) HandleInputKey(ev keys.Event) bool {
	if !submitChord.Matches(ev) {
		return false
	}
	c.Submit()
	return true
}

func (c *Controller) send(text string, fromInput bool) bool {
	c.mu.Lock()
	if fromInput {
		text = c.input
	}
	if strings.TrimSpace(text) == "" || c.pending || !c.open {
		c.mu.Unlock()
		return false
	}
	if fromInput {
		c.input = ""
	}

	c.appendLocked(RoleUser, text, false)
	c.pending = true
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	epoch := c.epoch
	page := c.page
	c.inflight.Add(1)
	c.publishLocked(EventUpdate)
	c.mu.Unlock()

	go c.respond(ctx, cancel, epoch, page, text)
	return true
}

func (c *Controller) respond(ctx context.Context, cancel context.CancelFunc, epoch uint64, page *content.Page, text string) {
	defer c.inflight.Done()
	defer cancel()

	if c.client == nil {
		c.fail(epoch, 0, errNoClient)
		return
	}
	sess, err := c.client.CreateSession(ctx, llm.SessionConfig{
		Model:             c.model,
		SystemInstruction: SystemPrompt(c.name, c.site, page),
		Temperature:       c.temperature,
	})
	if err != nil {
		c.fail(epoch, 0, err)
		return
	}

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return
	}
	id := c.appendLocked(RoleAssistant, "", true)
	c.publishLocked(EventUpdate)
	c.mu.Unlock()

	stream, err := sess.SendStreaming(ctx, text)
	if err != nil {
		c.fail(epoch, id, err)
		return
	}
	defer stream.Close()

	for {
		frag, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			c.fail(epoch, id, err)
			return
		}
		if !c.applyFragment(epoch, id, frag) {
			return
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return
	}
	if m := c.messageLocked(id); m != nil {
		m.Streaming = false
	}
	c.pending = false
	c.cancel = nil
	c.publishLocked(EventUpdate)
}

// applyFragment appends frag to message id. It reports false once the
// request has been superseded.
func (c *Controller) applyFragment(epoch uint64, id int64, frag string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return false
	}
	if m := c.messageLocked(id); m != nil {
		m.Text += frag
	}
	c.publishLocked(EventUpdate)
	return true
}

// fail replaces the placeholder (if any) with the apology message.
func (c *Controller) fail(epoch uint64, placeholder int64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		c.logger.Debug("discarding superseded response", zap.Error(err))
		return
	}
	c.logger.Error("assistant request failed", zap.Error(err))

	if placeholder != 0 {
		for i, m := range c.transcript {
			if m.ID == placeholder {
				c.transcript = append(c.transcript[:i], c.transcript[i+1:]...)
				break
			}
		}
	}
	c.appendLocked(RoleAssistant, ErrorMessage, false)
	c.pending = false
	c.cancel = nil
	c.publishLocked(EventUpdate)
}

// Wait blocks until no request is in flight.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) resetLocked(page *content.Page) {
	c.abortLocked()
	c.page = page
	c.transcript = nil
	c.input = ""
	c.appendLocked(RoleAssistant, WelcomeMessage(c.name, page), false)
}

// abortLocked cancels the in-flight request and invalidates its epoch.
func (c *Controller) abortLocked() {
	c.epoch++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.pending = false
}

func (c *Controller) appendLocked(role Role, text string, streaming bool) int64 {
	c.nextID++
	c.transcript = append(c.transcript, Message{ID: c.nextID, Role: role, Text: text, Streaming: streaming})
	return c.nextID
}

func (c *Controller) messageLocked(id int64) *Message {
	for i := range c.transcript {
		if c.transcript[i].ID == id {
			return &c.transcript[i]
		}
	}
	return nil
}

func (c *Controller) scheduleFocusLocked() {
	c.stopFocusLocked()
	epoch := c.epoch
	c.focus = time.AfterFunc(c.focusDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.open && c.epoch == epoch {
			c.publishLocked(EventFocus)
		}
	})
}

func (c *Controller) stopFocusLocked() {
	if c.focus != nil {
		c.focus.Stop()
		c.focus = nil
	}
}

// IsOpen reports whether the panel is shown.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Pending reports whether a request is in flight.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Transcript returns a copy of the messages.
func (c *Controller) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.transcript...)
}

// Snapshot returns the complete panel state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		Open:     c.open,
		Messages: append([]Message{}, c.transcript...),
		Pending:  c.pending,
		Input:    c.input,
	}
	if c.page != nil {
		s.PageSlug = c.page.Slug
		s.PageTitle = c.page.Title
	}
	return s
}

// Subscribe returns a channel receiving every event from now on, and a
// function that ends the subscription and closes the channel. The channel is
// also closed by Shutdown.
func (c *Controller) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	c.subMu.Lock()
	defer c.subMu.Unlock()
	if c.shut {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	return ch, func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}

// Watch subscribes and returns the state that the first delivered event
// follows, so a consumer can draw the snapshot and then apply events in order.
func (c *Controller) Watch() (Snapshot, <-chan Event, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, cancel := c.Subscribe()
	return c.snapshotLocked(), ch, cancel
}

// publishLocked notifies subscribers. Holding c.mu keeps events in state
// order; delivery never blocks.
func (c *Controller) publishLocked(t EventType) {
	ev := Event{Type: t, Snapshot: c.snapshotLocked()}
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		deliver(ch, ev)
	}
}

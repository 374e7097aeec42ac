// Package llmtest provides a scripted chat client for tests.
package llmtest

import (
	"context"
	"io"
	"sync"

	"github.com/ziadkadry99/nebula-docs/internal/llm"
)

// Reply scripts the response to one message.
type Reply struct {
	// Fragments are returned by Recv in order.
	Fragments []string
	// SendErr fails SendStreaming itself.
	SendErr error
	// ErrAfter fails Recv once every fragment has been delivered.
	ErrAfter error
	// Gate, when set, blocks each Recv until a value is received or the
	// request context is cancelled.
	Gate chan struct{}
}

// Client is a ChatClient that serves scripted replies in order. When the
// script runs out the last reply is reused.
type Client struct {
	CreateErr error

	mu       sync.Mutex
	replies  []Reply
	sessions []llm.SessionConfig
	sent     []string
	closed   int
}

// New returns a client that answers with replies.
func New(replies ...Reply) *Client {
	return &Client{replies: replies}
}

// Fragments is shorthand for a client whose only reply streams frags.
func Fragments(frags ...string) *Client {
	return New(Reply{Fragments: frags})
}

func (c *Client) Name() string { return "scripted" }

func (c *Client) CreateSession(ctx context.Context, cfg llm.SessionConfig) (llm.ChatSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.CreateErr != nil {
		return nil, c.CreateErr
	}
	c.sessions = append(c.sessions, cfg)
	return &session{client: c}, nil
}

// Sessions returns the configs of every session created so far.
func (c *Client) Sessions() []llm.SessionConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]llm.SessionConfig(nil), c.sessions...)
}

// Sent returns every message sent through any session.
func (c *Client) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sent...)
}

// Closed returns how many streams have been closed.
func (c *Client) Closed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) next(text string) Reply {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, text)
	if len(c.replies) == 0 {
		return Reply{}
	}
	r := c.replies[0]
	if len(c.replies) > 1 {
		c.replies = c.replies[1:]
	}
	return r
}

type session struct {
	client *Client
}

func (s *session) SendStreaming(ctx context.Context, text string) (llm.Stream, error) {
	r := s.client.next(text)
	if r.SendErr != nil {
		return nil, r.SendErr
	}
	return &stream{ctx: ctx, client: s.client, reply: r}, nil
}

type stream struct {
	ctx    context.Context
	client *Client
	reply  Reply
	pos    int
	once   sync.Once
}

func (s *stream) Recv() (string, error) {
	if s.reply.Gate != nil {
		select {
		case <-s.reply.Gate:
		case <-s.ctx.Done():
			return "", s.ctx.Err()
		}
	}
	if err := s.ctx.Err(); err != nil {
		return "", err
	}
	if s.pos < len(s.reply.Fragments) {
		f := s.reply.Fragments[s.pos]
		s.pos++
		return f, nil
	}
	if s.reply.ErrAfter != nil {
		return "", s.reply.ErrAfter
	}
	return "", io.EOF
}

func (s *stream) Close() error {
	s.once.Do(func() {
		s.client.mu.Lock()
		s.client.closed++
		s.client.mu.Unlock()
	})
	return nil
}

package llm

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// conversation is the provider-independent part of a session.
type conversation struct {
	cfg SessionConfig

	mu      sync.Mutex
	history []Message
}

func newConversation(cfg SessionConfig, defaultModel string) *conversation {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return &conversation{cfg: cfg}
}

// turn returns the history followed by the new user message.
func (c *conversation) turn(text string) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := make([]Message, 0, len(c.history)+1)
	msgs = append(msgs, c.history...)
	return append(msgs, Message{Role: RoleUser, Content: text})
}

func (c *conversation) commit(user, reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history,
		Message{Role: RoleUser, Content: user},
		Message{Role: RoleAssistant, Content: reply},
	)
}

// History returns a copy of the completed exchanges.
func (c *conversation) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.history...)
}

// recordingStream adds the exchange to the conversation once the provider
// stream finishes cleanly.
type recordingStream struct {
	Stream
	conv *conversation
	user string
	buf  strings.Builder
	done bool
}

func record(s Stream, conv *conversation, user string) Stream {
	return &recordingStream{Stream: s, conv: conv, user: user}
}

func (r *recordingStream) Recv() (string, error) {
	frag, err := r.Stream.Recv()
	if err == nil {
		r.buf.WriteString(frag)
		return frag, nil
	}
	if errors.Is(err, io.EOF) && !r.done {
		r.done = true
		r.conv.commit(r.user, r.buf.String())
	}
	return "", err
}

// Collect drains a stream and returns the concatenated text.
func Collect(s Stream) (string, error) {
	defer s.Close()
	var sb strings.Builder
	for {
		frag, err := s.Recv()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(frag)
	}
}

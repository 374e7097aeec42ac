// Package llm talks to hosted and local chat models. Every backend exposes
// the same streaming session API: a session is created with a system
// instruction and each message returns a one-shot stream of text fragments.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrMissingAPIKey is returned when a provider's credential is not set.
	ErrMissingAPIKey = errors.New("API key environment variable is not set")
	// ErrUnsupportedProvider is returned for unknown provider names.
	ErrUnsupportedProvider = errors.New("unsupported provider type")
)

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// SessionConfig describes a chat session. Model falls back to the client's
// default when empty.
type SessionConfig struct {
	Model             string
	SystemInstruction string
	Temperature       float64
	MaxTokens         int
}

// ChatClient opens chat sessions against one provider.
type ChatClient interface {
	Name() string
	CreateSession(ctx context.Context, cfg SessionConfig) (ChatSession, error)
}

// ChatSession is a conversation. Completed exchanges are kept as history for
// later messages in the same session.
type ChatSession interface {
	SendStreaming(ctx context.Context, text string) (Stream, error)
}

// Stream yields response fragments in order. Recv returns io.EOF after the
// last fragment. Close releases the underlying connection and may be called
// at any time.
type Stream interface {
	Recv() (string, error)
	Close() error
}

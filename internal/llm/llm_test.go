package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryReturnsErrorForMissingAPIKey(t *testing.T) {
	for _, p := range []string{"google", "openai", "anthropic", "openrouter", "minimax"} {
		t.Run(p, func(t *testing.T) {
			t.Setenv(apiKeyEnv[p], "")
			_, err := NewClient(context.Background(), p, "m")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingAPIKey))
			assert.Contains(t, err.Error(), apiKeyEnv[p])
		})
	}
}

func TestFactoryReturnsErrorForUnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), "nope", "m")
	assert.True(t, errors.Is(err, ErrUnsupportedProvider))
}

func TestFactoryCreatesOllamaWithDefaultHost(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	c, err := NewClient(context.Background(), "ollama", "llama3")
	require.NoError(t, err)
	assert.Equal(t, "ollama", c.Name())
	assert.Equal(t, DefaultOllamaHost, c.(*OllamaClient).baseURL)
}

func TestFactoryCreatesClients(t *testing.T) {
	cases := map[string]string{
		"openai":     "openai",
		"anthropic":  "anthropic",
		"openrouter": "openrouter",
		"minimax":    "minimax",
		"google":     "google",
	}
	for provider, name := range cases {
		t.Run(provider, func(t *testing.T) {
			t.Setenv(apiKeyEnv[provider], "test-key")
			c, err := NewClient(context.Background(), provider, "some-model")
			require.NoError(t, err)
			assert.Equal(t, name, c.Name())
		})
	}
}

func TestAnthropicStreamsDeltas(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "text/event-stream")
		events := []string{
			`{"type":"message_start"}`,
			`{"type":"content_block_start"}`,
			`{"type":"content_block_delta","delta":{"type":"text_delta","text":"Hel"}}`,
			`{"type":"ping"}`,
			`{"type":"content_block_delta","delta":{"type":"text_delta","text":"lo"}}`,
			`{"type":"message_stop"}`,
		}
		for _, e := range events {
			fmt.Fprintf(w, "event: x\ndata: %s\n\n", e)
		}
	}))
	defer srv.Close()

	c := NewAnthropicClient("k", "claude-test")
	c.endpoint = srv.URL

	sess, err := c.CreateSession(context.Background(), SessionConfig{SystemInstruction: "be brief", Temperature: 0.3})
	require.NoError(t, err)
	stream, err := sess.SendStreaming(context.Background(), "hi")
	require.NoError(t, err)

	text, err := Collect(stream)
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)

	assert.Equal(t, "claude-test", got.Model)
	assert.Equal(t, "be brief", got.System)
	assert.True(t, got.Stream)
	assert.Equal(t, []anthropicMessage{{Role: "user", Content: "hi"}}, got.Messages)
}

func TestAnthropicErrorEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"type\":\"error\",\"error\":{\"type\":\"overloaded_error\",\"message\":\"busy\"}}\n\n")
	}))
	defer srv.Close()

	c := NewAnthropicClient("k", "m")
	c.endpoint = srv.URL
	sess, _ := c.CreateSession(context.Background(), SessionConfig{})
	stream, err := sess.SendStreaming(context.Background(), "hi")
	require.NoError(t, err)

	_, err = Collect(stream)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "busy")
}

func TestAnthropicBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewAnthropicClient("k", "m")
	c.endpoint = srv.URL
	sess, _ := c.CreateSession(context.Background(), SessionConfig{})
	_, err := sess.SendStreaming(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestOllamaStreamsAndKeepsHistory(t *testing.T) {
	var requests []ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"Hel"},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"lo"},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":""},"done":true}`)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL+"/", "llama3")
	sess, err := c.CreateSession(context.Background(), SessionConfig{SystemInstruction: "sys"})
	require.NoError(t, err)

	for _, q := range []string{"one", "two"} {
		stream, err := sess.SendStreaming(context.Background(), q)
		require.NoError(t, err)
		text, err := Collect(stream)
		require.NoError(t, err)
		assert.Equal(t, "Hello", text)
	}

	require.Len(t, requests, 2)
	assert.True(t, requests[0].Stream)
	assert.Equal(t, "llama3", requests[0].Model)
	assert.Len(t, requests[0].Messages, 2)
	assert.Equal(t, []ollamaMessage{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "one"},
		{Role: "assistant", Content: "Hello"},
		{Role: "user", Content: "two"},
	}, requests[1].Messages)
}

func TestOllamaTruncatedStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"message":{"content":"partial"},"done":false}`)
	}))
	defer srv.Close()

	sess, _ := NewOllamaClient(srv.URL, "m").CreateSession(context.Background(), SessionConfig{})
	stream, err := sess.SendStreaming(context.Background(), "q")
	require.NoError(t, err)

	text, err := Collect(stream)
	assert.Equal(t, "partial", text)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestZeroTemperatureIsSent(t *testing.T) {
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		if strings.HasSuffix(r.URL.Path, "/api/chat") {
			fmt.Fprintln(w, `{"message":{"role":"assistant","content":""},"done":true}`)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	for _, c := range []ChatClient{
		NewOllamaClient(srv.URL, "llama3"),
		newCompatibleClient("test", "k", srv.URL, "gpt-test"),
	} {
		sess, err := c.CreateSession(context.Background(), SessionConfig{Temperature: 0})
		require.NoError(t, err)
		stream, err := sess.SendStreaming(context.Background(), "q")
		require.NoError(t, err)
		_, err = Collect(stream)
		require.NoError(t, err)
	}

	require.Len(t, bodies, 2)
	options, ok := bodies[0]["options"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, options, "temperature")
	assert.Equal(t, 0.0, options["temperature"])

	require.Contains(t, bodies[1], "temperature")
	assert.InDelta(t, 0, bodies[1]["temperature"], 1e-6)
}

func TestOpenAICompatibleStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		w.Header().Set("Content-Type", "text/event-stream")
		for _, frag := range []string{"Hel", "", "lo"} {
			fmt.Fprintf(w, "data: {\"id\":\"1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n", frag)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	c := newCompatibleClient("test", "k", srv.URL, "gpt-test")
	sess, err := c.CreateSession(context.Background(), SessionConfig{SystemInstruction: "sys"})
	require.NoError(t, err)
	stream, err := sess.SendStreaming(context.Background(), "hi")
	require.NoError(t, err)

	text, err := Collect(stream)
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)
}

type countingClient struct{ sessions int }

func (c *countingClient) Name() string { return "counting" }

func (c *countingClient) CreateSession(context.Context, SessionConfig) (ChatSession, error) {
	c.sessions++
	return countingSession{}, nil
}

type countingSession struct{}

func (countingSession) SendStreaming(context.Context, string) (Stream, error) {
	return emptyStream{}, nil
}

type emptyStream struct{}

func (emptyStream) Recv() (string, error) { return "", io.EOF }
func (emptyStream) Close() error          { return nil }

func TestRateLimiterPassesThrough(t *testing.T) {
	inner := &countingClient{}
	rl := NewRateLimitedClient(inner, 60)
	assert.Equal(t, "counting", rl.Name())

	sess, err := rl.CreateSession(context.Background(), SessionConfig{})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := sess.SendStreaming(context.Background(), "x")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.sessions)
}

func TestRateLimiterLimitsRequests(t *testing.T) {
	rl := NewRateLimitedClient(&countingClient{}, 1)
	sess, err := rl.CreateSession(context.Background(), SessionConfig{})
	require.NoError(t, err)

	_, err = sess.SendStreaming(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = sess.SendStreaming(ctx, "second")
	assert.Error(t, err, "the bucket is empty for a minute")
}

func TestRecordingStreamSkipsFailedExchanges(t *testing.T) {
	conv := newConversation(SessionConfig{}, "m")
	assert.Equal(t, "m", conv.cfg.Model)

	failing := record(&errStream{err: errors.New("boom")}, conv, "q")
	_, err := Collect(failing)
	assert.Error(t, err)
	assert.Empty(t, conv.History())

	ok := record(emptyStream{}, conv, "q")
	_, err = Collect(ok)
	require.NoError(t, err)
	assert.Len(t, conv.History(), 2)
}

type errStream struct{ err error }

func (e *errStream) Recv() (string, error) { return "", e.err }
func (e *errStream) Close() error          { return nil }

func TestRoles(t *testing.T) {
	assert.Equal(t, Role("system"), RoleSystem)
	assert.Equal(t, Role("user"), RoleUser)
	assert.Equal(t, Role("assistant"), RoleAssistant)
}

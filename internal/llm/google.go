package llm

import (
	"context"
	"fmt"
	"io"
	"iter"

	"google.golang.org/genai"
)

// GeminiClient implements ChatClient with the Google Gen AI SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini API client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Name() string {
	return "google"
}

func (c *GeminiClient) CreateSession(_ context.Context, cfg SessionConfig) (ChatSession, error) {
	return &geminiSession{client: c.client, conv: newConversation(cfg, c.model)}, nil
}

type geminiSession struct {
	client *genai.Client
	conv   *conversation
}

func (s *geminiSession) SendStreaming(ctx context.Context, text string) (Stream, error) {
	var contents []*genai.Content
	for _, m := range s.conv.turn(text) {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	seq := s.client.Models.GenerateContentStream(ctx, s.conv.cfg.Model, contents, geminiConfig(s.conv.cfg))
	next, stop := iter.Pull2(seq)
	return record(&geminiStream{next: next, stop: stop}, s.conv, text), nil
}

func geminiConfig(cfg SessionConfig) *genai.GenerateContentConfig {
	temp := float32(cfg.Temperature)
	out := &genai.GenerateContentConfig{Temperature: &temp}
	if cfg.SystemInstruction != "" {
		out.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: cfg.SystemInstruction}},
		}
	}
	if cfg.MaxTokens > 0 {
		out.MaxOutputTokens = int32(cfg.MaxTokens)
	}
	return out
}

type geminiStream struct {
	next func() (*genai.GenerateContentResponse, error, bool)
	stop func()
}

func (s *geminiStream) Recv() (string, error) {
	for {
		resp, err, ok := s.next()
		if !ok {
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("gemini stream: %w", err)
		}
		if resp == nil {
			continue
		}
		if text := resp.Text(); text != "" {
			return text, nil
		}
	}
}

func (s *geminiStream) Close() error {
	s.stop()
	return nil
}

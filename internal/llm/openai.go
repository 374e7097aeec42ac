package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	minimaxBaseURL    = "https://api.minimax.io/v1"
)

// OpenAIClient implements ChatClient for the OpenAI Chat Completions API and
// for OpenAI-compatible services.
type OpenAIClient struct {
	client *openai.Client
	name   string
	model  string
}

// NewOpenAIClient creates a client for api.openai.com.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{client: openai.NewClient(apiKey), name: "openai", model: model}
}

// NewOpenRouterClient creates a client for OpenRouter.
func NewOpenRouterClient(apiKey, model string) *OpenAIClient {
	return newCompatibleClient("openrouter", apiKey, openRouterBaseURL, model)
}

// NewMinimaxClient creates a client for MiniMax.
func NewMinimaxClient(apiKey, model string) *OpenAIClient {
	return newCompatibleClient("minimax", apiKey, minimaxBaseURL, model)
}

func newCompatibleClient(name, apiKey, baseURL, model string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg), name: name, model: model}
}

func (c *OpenAIClient) Name() string {
	return c.name
}

func (c *OpenAIClient) CreateSession(_ context.Context, cfg SessionConfig) (ChatSession, error) {
	return &openaiSession{client: c, conv: newConversation(cfg, c.model)}, nil
}

type openaiSession struct {
	client *OpenAIClient
	conv   *conversation
}

func (s *openaiSession) SendStreaming(ctx context.Context, text string) (Stream, error) {
	cfg := s.conv.cfg

	var messages []openai.ChatCompletionMessage
	if cfg.SystemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: cfg.SystemInstruction,
		})
	}
	for _, m := range s.conv.turn(text) {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	// go-openai omits a zero temperature, which the API reads as its own
	// default. The smallest positive float32 is sent instead.
	temp := float32(cfg.Temperature)
	if temp == 0 {
		temp = math.SmallestNonzeroFloat32
	}
	stream, err := s.client.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       cfg.Model,
		Messages:    messages,
		MaxTokens:   cfg.MaxTokens,
		Temperature: temp,
		Stream:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s stream: %w", s.client.name, err)
	}
	return record(&openaiStream{stream: stream}, s.conv, text), nil
}

type openaiStream struct {
	stream *openai.ChatCompletionStream
}

func (s *openaiStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
			continue
		}
		return resp.Choices[0].Delta.Content, nil
	}
}

func (s *openaiStream) Close() error {
	return s.stream.Close()
}

package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ziadkadry99/nebula-docs/internal/content"
	"github.com/ziadkadry99/nebula-docs/internal/llm"
)

// ErrEmptyQuestion is returned by Ask for a blank question.
var ErrEmptyQuestion = errors.New("question is empty")

// AskConfig configures a one-shot exchange. Empty fields take the panel's
// defaults. A nil Temperature means DefaultTemperature; point it at zero for
// deterministic replies.
type AskConfig struct {
	Name        string
	SiteName    string
	Model       string
	Temperature *float64
}

// Ask sends one question grounded in page and returns the full reply.
// onFragment, when set, is called with every fragment as it arrives.
func Ask(ctx context.Context, client llm.ChatClient, cfg AskConfig, page *content.Page, question string, onFragment func(string)) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	if client == nil {
		return "", errNoClient
	}
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.SiteName == "" {
		cfg.SiteName = DefaultSiteName
	}
	temperature := DefaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}

	sess, err := client.CreateSession(ctx, llm.SessionConfig{
		Model:             cfg.Model,
		SystemInstruction: SystemPrompt(cfg.Name, cfg.SiteName, page),
		Temperature:       temperature,
	})
	if err != nil {
		return "", fmt.Errorf("creating chat session: %w", err)
	}
	stream, err := sess.SendStreaming(ctx, question)
	if err != nil {
		return "", fmt.Errorf("sending question: %w", err)
	}
	defer stream.Close()

	var sb strings.Builder
	for {
		frag, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), fmt.Errorf("receiving reply: %w", err)
		}
		sb.WriteString(frag)
		if onFragment != nil {
			onFragment(frag)
		}
	}
}

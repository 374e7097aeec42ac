package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/nebula-docs/internal/assistant"
	"github.com/ziadkadry99/nebula-docs/internal/content"
	"github.com/ziadkadry99/nebula-docs/internal/llm/llmtest"
)

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		tool     mcp.Tool
		wantName string
	}{
		{listPagesTool, "list_pages"},
		{getPageTool, "get_page"},
		{askPageTool, "ask_page"},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			assert.Equal(t, tt.wantName, tt.tool.Name)
			assert.NotEmpty(t, tt.tool.Description)
		})
	}
	assert.ElementsMatch(t, []string{"slug", "question"}, askPageTool.InputSchema.Required)
}

func TestNewServer(t *testing.T) {
	srv := NewServer(content.Default(), nil, assistant.AskConfig{}, nil)
	require.NotNil(t, srv.mcp)
	assert.NotNil(t, srv.logger)
}

func TestHandleListPages(t *testing.T) {
	srv := NewServer(content.Default(), nil, assistant.AskConfig{}, nil)

	result, err := srv.handleListPages(context.Background(), call(nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "- Introduction (introduction)")
	assert.Contains(t, text, "- Facilitator (core-concepts/facilitator)")
}

func TestHandleGetPage(t *testing.T) {
	srv := NewServer(content.Default(), nil, assistant.AskConfig{}, nil)
	ctx := context.Background()

	t.Run("existing page", func(t *testing.T) {
		result, err := srv.handleGetPage(ctx, call(map[string]any{"slug": "/core-concepts/facilitator/"}))
		require.NoError(t, err)
		assert.False(t, result.IsError)

		text := resultText(t, result)
		assert.Contains(t, text, "Title: Facilitator")
		assert.Contains(t, text, "Sections:\n- ")
		assert.NotContains(t, text, "showing the default page")
	})

	t.Run("unknown page falls back", func(t *testing.T) {
		result, err := srv.handleGetPage(ctx, call(map[string]any{"slug": "nope"}))
		require.NoError(t, err)
		assert.False(t, result.IsError)

		text := resultText(t, result)
		assert.Contains(t, text, `No page "nope"; showing the default page instead.`)
		assert.Contains(t, text, "Slug: introduction")
	})

	t.Run("missing slug", func(t *testing.T) {
		result, err := srv.handleGetPage(ctx, call(map[string]any{}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}

func TestHandleAskPage(t *testing.T) {
	ctx := context.Background()
	args := map[string]any{"slug": "core-concepts/facilitator", "question": "What is a facilitator?"}

	t.Run("answers grounded in the page", func(t *testing.T) {
		client := llmtest.Fragments("It ", "coordinates.")
		srv := NewServer(content.Default(), client, assistant.AskConfig{SiteName: "Nebula UI"}, nil)

		result, err := srv.handleAskPage(ctx, call(args))
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "It coordinates.", resultText(t, result))

		sessions := client.Sessions()
		require.Len(t, sessions, 1)
		assert.Contains(t, sessions[0].SystemInstruction, `"Facilitator"`)
		assert.Equal(t, []string{"What is a facilitator?"}, client.Sent())
	})

	t.Run("no provider", func(t *testing.T) {
		srv := NewServer(content.Default(), nil, assistant.AskConfig{}, nil)
		result, err := srv.handleAskPage(ctx, call(args))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("provider failure", func(t *testing.T) {
		client := llmtest.New(llmtest.Reply{SendErr: errors.New("unavailable")})
		srv := NewServer(content.Default(), client, assistant.AskConfig{}, nil)
		result, err := srv.handleAskPage(ctx, call(args))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, assistant.ErrorMessage, resultText(t, result))
	})

	t.Run("blank question", func(t *testing.T) {
		srv := NewServer(content.Default(), llmtest.Fragments("x"), assistant.AskConfig{}, nil)
		result, err := srv.handleAskPage(ctx, call(map[string]any{"slug": "introduction", "question": "  "}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}

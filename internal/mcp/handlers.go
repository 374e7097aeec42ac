package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nebula-docs/internal/assistant"
	"github.com/ziadkadry99/nebula-docs/internal/content"
	"github.com/ziadkadry99/nebula-docs/internal/render"
)

func (s *Server) handleListPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	pages := s.store.Pages()
	fmt.Fprintf(&sb, "%d page(s):\n", len(pages))
	for _, p := range pages {
		fmt.Fprintf(&sb, "- %s (%s)\n", p.Title, p.Slug)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleGetPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := request.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: slug"), nil
	}

	page, ok := s.lookup(slug)
	return mcp.NewToolResultText(formatPage(page, slug, ok)), nil
}

func (s *Server) handleAskPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := request.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: slug"), nil
	}
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}
	if s.client == nil {
		return mcp.NewToolResultError("No LLM provider configured. Set llm.provider in the config file."), nil
	}

	page, _ := s.lookup(slug)
	reply, err := assistant.Ask(ctx, s.client, s.ask, page, question, nil)
	if errors.Is(err, assistant.ErrEmptyQuestion) {
		return mcp.NewToolResultError("question must not be blank"), nil
	}
	if err != nil {
		s.logger.Error("ask_page failed", zap.String("slug", page.Slug), zap.Error(err))
		return mcp.NewToolResultError(assistant.ErrorMessage), nil
	}
	return mcp.NewToolResultText(reply), nil
}

func (s *Server) lookup(slug string) (*content.Page, bool) {
	slug = strings.Trim(slug, "/")
	if page, ok := s.store.Lookup(slug); ok {
		return page, true
	}
	return s.store.Page(slug), false
}

// formatPage renders a page for agent consumption: a short header, the
// section outline and the raw markdown.
func formatPage(page *content.Page, requested string, found bool) string {
	var sb strings.Builder
	if !found {
		fmt.Fprintf(&sb, "No page %q; showing the default page instead.\n\n", requested)
	}
	fmt.Fprintf(&sb, "Title: %s\nSlug: %s\n", page.Title, page.Slug)

	if headings := render.ExtractHeadings(page.Content); len(headings) > 0 {
		sb.WriteString("Sections:\n")
		for _, h := range headings {
			fmt.Fprintf(&sb, "- %s\n", h)
		}
	}

	sb.WriteString("\n")
	sb.WriteString(page.Content)
	if !strings.HasSuffix(page.Content, "\n") {
		sb.WriteString("\n")
	}
	return sb.String()
}

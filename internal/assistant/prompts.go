package assistant

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/nebula-docs/internal/content"
)

// ErrorMessage is appended to the transcript when a request fails.
const ErrorMessage = "I'm sorry, I encountered an error connecting to the AI service. Please try again."

// WelcomeMessage greets the reader of page, or of the site when page is nil.
func WelcomeMessage(name string, page *content.Page) string {
	subject := "the documentation"
	if page != nil {
		subject = `"` + page.Title + `"`
	}
	return fmt.Sprintf("Hi! I'm %s. I can help you with questions about %s.", name, subject)
}

// SystemPrompt grounds a chat session in the page being read.
func SystemPrompt(name, site string, page *content.Page) string {
	var ctx string
	if page != nil {
		ctx = fmt.Sprintf("The user is currently reading the documentation page titled \"%s\".\n\nContent of the current page:\n%s\n", page.Title, page.Content)
	} else {
		ctx = "The user is browsing the documentation.\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s, a helpful, technical, and concise documentation assistant for \"%s\".\n\n", name, site)
	sb.WriteString("Your goal is to help developers understand the library, fix code issues, and find information.\n\n")
	sb.WriteString("Context:\n")
	sb.WriteString(ctx)
	sb.WriteString(`
Rules:
1. Be concise. Developers want quick answers.
2. Use code blocks for examples.
3. If the answer is in the "Content of the current page" provided above, explicitly reference it.
4. If you don't know the answer based on general web knowledge or the provided context, politely say so.
5. Assume the user is a developer using React and TypeScript.
`)
	return sb.String()
}

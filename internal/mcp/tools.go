package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listPagesTool = mcp.NewTool("list_pages",
	mcp.WithDescription("List every documentation page with its slug and title."),
)

var getPageTool = mcp.NewTool("get_page",
	mcp.WithDescription("Get the markdown of a documentation page and its section headings. Unknown slugs fall back to the default page."),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Page slug, e.g. core-concepts/facilitator"),
	),
)

var askPageTool = mcp.NewTool("ask_page",
	mcp.WithDescription("Ask the documentation assistant a question grounded in one page and return its answer."),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Slug of the page the question is about"),
	),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The question to ask"),
	),
)

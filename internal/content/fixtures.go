package content

// Default returns the built-in Nebula UI sample catalogue.
func Default() *Store {
	s, err := New(samplePages, sampleNav)
	if err != nil {
		panic("content: invalid sample catalogue: " + err.Error())
	}
	return s
}

var samplePages = []*Page{
	{
		ID:    "intro",
		Title: "Introduction",
		Slug:  "introduction",
		Content: "# Introduction to Nebula UI\n\n" +
			"Welcome to **Nebula UI**, a modular and accessible component library for the modern web.\n\n" +
			"Nebula UI is designed to be:\n" +
			"- **Fast**: Zero-runtime CSS extraction.\n" +
			"- **Accessible**: WAI-ARIA compliant out of the box.\n" +
			"- **Customizable**: Built on top of a powerful theming engine.\n\n" +
			"## Getting Started\n\n" +
			"To install Nebula UI, run the following command in your terminal:\n\n" +
			"```bash\nnpm install @nebula-ui/core\n```\n\n" +
			"## Why Nebula?\n\n" +
			"We built Nebula because we were tired of wrestling with complex configurations.\n\n" +
			"> \"Simplicity is the ultimate sophistication.\"\n\n" +
			"Start building your next big idea with Nebula today.\n",
	},
	{
		ID:       "installation",
		Title:    "Installation",
		Slug:     "getting-started/installation",
		ParentID: "group-1",
		Content: "# Installation\n\n" +
			"Installing Nebula UI is straightforward. We support all modern package managers.\n\n" +
			"### NPM\n```bash\nnpm install @nebula-ui/core\n```\n\n" +
			"### Yarn\n```bash\nyarn add @nebula-ui/core\n```\n\n" +
			"### PNPM\n```bash\npnpm add @nebula-ui/core\n```\n\n" +
			"## Peer Dependencies\n\n" +
			"Ensure you have React 18+ installed.\n\n" +
			"```json\n\"peerDependencies\": {\n  \"react\": \">=18.0.0\",\n  \"react-dom\": \">=18.0.0\"\n}\n```\n",
	},
	{
		ID:       "facilitator",
		Title:    "Facilitator",
		Slug:     "core-concepts/facilitator",
		ParentID: "group-core",
		Content: "# Facilitator\n\n" +
			"The facilitator is the runtime object that mediates between your components and the\n" +
			"browser: it owns focus management, portals and the layer stack for overlays.\n\n" +
			"## Creating a Facilitator\n\n" +
			"```tsx\nimport { createFacilitator } from '@nebula-ui/core';\n\n" +
			"const facilitator = createFacilitator({ portalRoot: document.body });\n```\n\n" +
			"## Layer Stack\n\n" +
			"Every dialog, popover and toast registers a layer. The facilitator keeps them ordered\n" +
			"so that `Escape` always closes the top-most layer first.\n\n" +
			"## Focus Trapping\n\n" +
			"While a modal layer is open, focus is trapped inside it and restored to the previously\n" +
			"focused element when the layer closes.\n",
	},
	{
		ID:       "buttons",
		Title:    "Button",
		Slug:     "components/button",
		ParentID: "group-2",
		Content: "# Button Component\n\n" +
			"The `Button` component is used to trigger an action or event, such as submitting a form,\n" +
			"opening a dialog, or canceling an action.\n\n" +
			"## Usage\n\n" +
			"```jsx\nimport { Button } from '@nebula-ui/core';\n\nfunction App() {\n  return (\n" +
			"    <Button variant=\"primary\" onClick={() => alert('Clicked!')}>\n      Click me\n    </Button>\n  );\n}\n```\n\n" +
			"## Variants\n\n" +
			"- **Primary**: Used for the main action.\n" +
			"- **Secondary**: Used for alternative actions.\n" +
			"- **Ghost**: Used for less prominent actions.\n" +
			"- **Destructive**: Used for dangerous actions like deletion.\n\n" +
			"## Props\n\n" +
			"| Prop | Type | Default | Description |\n" +
			"|------|------|---------|-------------|\n" +
			"| variant | 'primary' \\| 'secondary' \\| 'ghost' | 'primary' | The visual style of the button |\n" +
			"| size | 'sm' \\| 'md' \\| 'lg' | 'md' | The size of the button |\n" +
			"| disabled | boolean | false | Whether the button is disabled |\n",
	},
	{
		ID:       "cards",
		Title:    "Card",
		Slug:     "components/card",
		ParentID: "group-2",
		Content: "# Card Component\n\n" +
			"Cards are flexible containers used to group related content and actions.\n\n" +
			"## Usage\n\n" +
			"```jsx\nimport { Card, CardHeader, CardBody, CardFooter } from '@nebula-ui/core';\n\n" +
			"<Card>\n  <CardHeader>Account Info</CardHeader>\n  <CardBody>\n" +
			"    <p>View and manage your account details here.</p>\n  </CardBody>\n" +
			"  <CardFooter>\n    <Button>Save Changes</Button>\n  </CardFooter>\n</Card>\n```\n\n" +
			"### Best Practices\n\n" +
			"1. Use cards to display content composed of different elements.\n" +
			"2. Don't use too many cards on a single page as it can clutter the UI.\n",
	},
	{
		ID:       "theming",
		Title:    "Theming",
		Slug:     "advanced/theming",
		ParentID: "group-3",
		Content: "# Theming\n\n" +
			"Nebula UI has a powerful theming engine powered by CSS variables.\n\n" +
			"## Customizing Colors\n\n" +
			"You can override the default color palette by wrapping your application in the `NebulaProvider`.\n\n" +
			"```jsx\nconst theme = {\n  colors: {\n    primary: '#6366f1',\n    secondary: '#a855f7',\n  }\n};\n\n" +
			"<NebulaProvider theme={theme}>\n  <App />\n</NebulaProvider>\n```\n\n" +
			"## Dark Mode\n\n" +
			"Dark mode is supported out of the box. Simply toggle the `dark` class on your `html` element.\n",
	},
}

var sampleNav = []*NavNode{
	{
		ID:    "group-1",
		Title: "Getting Started",
		Children: []*NavNode{
			{ID: "intro", Title: "Introduction", Slug: "introduction"},
			{ID: "installation", Title: "Installation", Slug: "getting-started/installation"},
		},
	},
	{
		ID:    "group-core",
		Title: "Core Concepts",
		Children: []*NavNode{
			{ID: "facilitator", Title: "Facilitator", Slug: "core-concepts/facilitator"},
		},
	},
	{
		ID:    "group-2",
		Title: "Components",
		Children: []*NavNode{
			{ID: "buttons", Title: "Button", Slug: "components/button"},
			{ID: "cards", Title: "Card", Slug: "components/card"},
		},
	},
	{
		ID:    "group-3",
		Title: "Advanced",
		Children: []*NavNode{
			{ID: "theming", Title: "Theming", Slug: "advanced/theming"},
		},
	},
}

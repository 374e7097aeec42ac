package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/nebula-docs/internal/content"
)

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Print the navigation tree with page slugs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := loadContent(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), navTree(cfg.SiteName, store.NavigationTree()))
		return nil
	},
}

// navTree renders nodes as a lipgloss tree rooted at title.
func navTree(title string, nodes []*content.NavNode) *tree.Tree {
	t := tree.Root(titleStyle.Render(title)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(mutedStyle)
	addNavNodes(t, nodes)
	return t
}

func addNavNodes(t *tree.Tree, nodes []*content.NavNode) {
	for _, n := range nodes {
		if n.IsGroup() {
			sub := tree.Root(n.Title)
			addNavNodes(sub, n.Children)
			t.Child(sub)
			continue
		}
		t.Child(n.Title + " " + mutedStyle.Render(n.Slug))
	}
}

func init() {
	rootCmd.AddCommand(navCmd)
}

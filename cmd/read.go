package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/nebula-docs/internal/render"
)

var readWidth int

var readCmd = &cobra.Command{
	Use:   "read [slug]",
	Short: "Render a documentation page in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, err := loadContent(cfg)
		if err != nil {
			return err
		}
		page := store.DefaultPage()
		if len(args) == 1 {
			page = resolvePage(store, strings.Trim(args[0], "/"))
		}

		th, closePrefs, err := terminalTheme(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closePrefs()

		out, err := render.RenderTerminal(page.Content, th.Current(), readWidth)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprint(w, out)
		if headings := render.ExtractHeadings(page.Content); len(headings) > 0 {
			fmt.Fprintln(w, titleStyle.Render("On this page"))
			for _, h := range headings {
				fmt.Fprintln(w, mutedStyle.Render("  • "+h))
			}
		}
		return nil
	},
}

func init() {
	readCmd.Flags().IntVarP(&readWidth, "width", "w", 80, "word wrap width")
	rootCmd.AddCommand(readCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/nebula-docs/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme [toggle|light|dark]",
	Short: "Show or change the terminal colour theme",
	Long: `Without arguments prints the theme used by "read". "toggle" flips it;
"light" or "dark" sets it. The choice is persisted in the preference store.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"toggle", string(theme.Light), string(theme.Dark)},
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

		th, closePrefs, err := terminalTheme(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closePrefs()

		if len(args) == 1 {
			if args[0] == "toggle" {
				th.Toggle()
			} else {
				p, err := theme.Parse(args[0])
				if err != nil {
					return err
				}
				th.Set(p)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), th.Current())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/nebula-docs/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize nebuladocs configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the site and its assistant and writes a .nebuladocs.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/ziadkadry99/nebula-docs/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio exposing the
documentation catalogue: list_pages, get_page and ask_page.`,
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

		client, err := newChatClient(cmd.Context(), cfg)
		if err != nil {
			logger.Warn("ask_page disabled", zap.Error(missingKeyHint(err, cfg)))
			client = nil
		}

		mcpserver.Version = Version
		logger.Info("MCP server started on stdio", zap.Int("pages", len(store.Pages())))

		srv := mcpserver.NewServer(store, client, askConfig(cfg), logger)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nebula-docs/internal/assistant"
	"github.com/ziadkadry99/nebula-docs/internal/progress"
)

var askCmd = &cobra.Command{
	Use:   "ask <slug> <question>",
	Short: "Ask the assistant a question about a page",
	Long: `Sends one question grounded in the given page and streams the answer to
stdout. A spinner is shown on stderr until the first words arrive.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Assistant.Enabled {
			return fmt.Errorf("the assistant is disabled (assistant.enabled: false)")
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		store, err := loadContent(cfg)
		if err != nil {
			return err
		}
		page := resolvePage(store, strings.Trim(args[0], "/"))
		question := strings.Join(args[1:], " ")

		client, err := newChatClient(ctx, cfg)
		if err != nil {
			return missingKeyHint(err, cfg)
		}

		indicator := progress.NewIndicator(os.Stderr)
		indicator.Start(fmt.Sprintf("Asking %s about %q", cfg.Assistant.Name, page.Title))
		var firstFragment sync.Once

		w := cmd.OutOrStdout()
		_, err = assistant.Ask(ctx, client, askConfig(cfg), page, question, func(frag string) {
			firstFragment.Do(indicator.Stop)
			fmt.Fprint(w, frag)
		})
		indicator.Stop()
		fmt.Fprintln(w)

		if err != nil {
			logger.Error("assistant request failed", zap.String("slug", page.Slug), zap.Error(err))
			fmt.Fprintln(os.Stderr, warningStyle.Render(assistant.ErrorMessage))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/nebula-docs/internal/prefs"
	"github.com/ziadkadry99/nebula-docs/internal/render"
	"github.com/ziadkadry99/nebula-docs/internal/server"
	"github.com/ziadkadry99/nebula-docs/internal/shell"
	"github.com/ziadkadry99/nebula-docs/internal/site"
	"github.com/ziadkadry99/nebula-docs/internal/theme"
)

const shutdownTimeout = 10 * time.Second

var (
	servePort     int
	serveInsecure bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the documentation site",
	Long: `Starts the HTTP server. Every visitor gets a display session with its own
navigation state, theme and assistant panel; idle sessions are closed after
server.session_ttl.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := loadContent(cfg)
		if err != nil {
			return err
		}

		backend, closePrefs, err := openPrefs(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closePrefs()

		client, err := newChatClient(ctx, cfg)
		if err != nil {
			// The panel stays available and answers with the error message.
			logger.Warn("assistant provider unavailable", zap.Error(missingKeyHint(err, cfg)))
			client = nil
		}

		ttl, err := cfg.SessionTTL()
		if err != nil {
			return err
		}

		renderer := render.New()
		opts := assistantOptions(cfg, logger)
		registry := shell.NewRegistry(ttl, func(visitorID string, system theme.SystemPreference) *shell.Shell {
			return shell.New(shell.Config{
				SiteName:         cfg.SiteName,
				Content:          store,
				Renderer:         renderer,
				Client:           client,
				AssistantEnabled: cfg.Assistant.Enabled,
				AssistantOptions: opts,
				Prefs:            prefs.ForScope(backend, "visitor:"+visitorID),
				SystemTheme:      system,
				Logger:           logger,
			})
		}, logger)

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAll,
		}, logger)

		docs, err := site.New(site.Config{
			Content:       store,
			Registry:      registry,
			SecureCookies: !serveInsecure,
			Logger:        logger,
		})
		if err != nil {
			return fmt.Errorf("building site: %w", err)
		}
		docs.Mount(srv.Router())

		logger.Info("serving documentation",
			zap.String("site", cfg.SiteName),
			zap.Int("pages", len(store.Pages())),
			zap.Bool("assistant", cfg.Assistant.Enabled),
			zap.Duration("session_ttl", ttl),
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := srv.Start(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			return registry.Run(gctx)
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveInsecure, "insecure-cookies", false, "issue visitor cookies without the Secure flag (plain HTTP development)")
	rootCmd.AddCommand(serveCmd)
}

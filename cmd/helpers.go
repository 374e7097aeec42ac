package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/nebula-docs/internal/assistant"
	"github.com/ziadkadry99/nebula-docs/internal/config"
	"github.com/ziadkadry99/nebula-docs/internal/content"
	"github.com/ziadkadry99/nebula-docs/internal/db"
	"github.com/ziadkadry99/nebula-docs/internal/llm"
	"github.com/ziadkadry99/nebula-docs/internal/logging"
	"github.com/ziadkadry99/nebula-docs/internal/prefs"
)

// cliScope is the preference scope used by terminal commands.
const cliScope = "cli"

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `nebuladocs init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	opts := logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}
	if verbose {
		opts.Level = "debug"
	}
	return logging.New(opts)
}

// loadContent reads the catalogue from content_dir, or returns the built-in
// sample docs when none is configured.
func loadContent(cfg *config.Config) (*content.Store, error) {
	if cfg.ContentDir == "" {
		return content.Default(), nil
	}
	store, err := content.LoadDir(cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("loading content from %s: %w", cfg.ContentDir, err)
	}
	return store, nil
}

// openPrefs opens the configured preference backend. An unreachable backend
// is logged and replaced by an in-memory one so preferences still work for
// the lifetime of the process.
func openPrefs(ctx context.Context, cfg *config.Config, logger *zap.Logger) (prefs.Backend, func() error, error) {
	var (
		backend prefs.Backend
		closer  = func() error { return nil }
	)

	switch cfg.Preferences.Backend {
	case config.PrefsSQLite:
		database, err := db.Open(filepath.Join(cfg.DataDir, "prefs.db"))
		if err != nil {
			logger.Warn("preference database unavailable, using memory", zap.Error(err))
			backend = prefs.NewMemoryBackend()
			break
		}
		backend = prefs.NewSQLiteBackend(database)
		closer = database.Close
	case config.PrefsRedis:
		rb, err := prefs.NewRedisBackend(cfg.Preferences.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("configuring redis preferences: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = rb.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warn("redis unavailable, using memory", zap.Error(err))
			rb.Close()
			backend = prefs.NewMemoryBackend()
			break
		}
		backend = rb
		closer = rb.Close
	default:
		backend = prefs.NewMemoryBackend()
	}

	ttl, err := cfg.PrefsCacheTTL()
	if err != nil {
		closer()
		return nil, nil, err
	}
	if ttl > 0 {
		backend = prefs.NewCachedBackend(backend, ttl)
	}
	return backend, closer, nil
}

// newChatClient creates the configured chat client. It returns nil when the
// assistant is disabled.
func newChatClient(ctx context.Context, cfg *config.Config) (llm.ChatClient, error) {
	if !cfg.Assistant.Enabled {
		return nil, nil
	}
	client, err := llm.NewClient(ctx, string(cfg.Assistant.Provider), cfg.Assistant.Model)
	if err != nil {
		return nil, err
	}
	if rpm := cfg.Assistant.RequestsPerMinute; rpm > 0 {
		return llm.NewRateLimitedClient(client, rpm), nil
	}
	return client, nil
}

func assistantOptions(cfg *config.Config, logger *zap.Logger) []assistant.Option {
	return []assistant.Option{
		assistant.WithName(cfg.Assistant.Name),
		assistant.WithModel(cfg.Assistant.Model),
		assistant.WithTemperature(cfg.Assistant.Temperature),
		assistant.WithLogger(logger),
	}
}

func askConfig(cfg *config.Config) assistant.AskConfig {
	temperature := cfg.Assistant.Temperature
	return assistant.AskConfig{
		Name:        cfg.Assistant.Name,
		SiteName:    cfg.SiteName,
		Model:       cfg.Assistant.Model,
		Temperature: &temperature,
	}
}

// missingKeyHint turns a missing API key error into an actionable message.
func missingKeyHint(err error, cfg *config.Config) error {
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return fmt.Errorf("%w\nExport %s or pick another provider with `nebuladocs init`", err, config.APIKeyEnvVar(cfg.Assistant.Provider))
	}
	return err
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides. Nested keys are
// separated by a double underscore: NEBULADOCS_ASSISTANT__PROVIDER sets
// assistant.provider.
const EnvPrefix = "NEBULADOCS_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (NEBULADOCS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = DefaultModel(cfg.Assistant.Provider)
	}

	return cfg, nil
}

// envKey maps NEBULADOCS_SERVER__PORT to server.port.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validProviders = map[ProviderType]bool{
	ProviderGoogle:     true,
	ProviderOpenAI:     true,
	ProviderAnthropic:  true,
	ProviderOllama:     true,
	ProviderMiniMax:    true,
	ProviderOpenRouter: true,
}

var validBackends = map[PrefsBackend]bool{
	PrefsSQLite: true,
	PrefsRedis:  true,
	PrefsMemory: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SiteName == "" {
		return fmt.Errorf("site_name is required")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if _, err := c.SessionTTL(); err != nil {
		return err
	}

	if c.Assistant.Enabled {
		if !validProviders[c.Assistant.Provider] {
			return fmt.Errorf("invalid assistant.provider %q: must be one of google, openai, anthropic, ollama, minimax, openrouter", c.Assistant.Provider)
		}
		if c.Assistant.Model == "" {
			return fmt.Errorf("assistant.model is required")
		}
		if c.Assistant.Temperature < 0 || c.Assistant.Temperature > 2 {
			return fmt.Errorf("assistant.temperature must be within [0, 2]")
		}
		if c.Assistant.RequestsPerMinute < 0 {
			return fmt.Errorf("assistant.requests_per_minute must be non-negative")
		}
	}

	if !validBackends[c.Preferences.Backend] {
		return fmt.Errorf("invalid preferences.backend %q: must be one of sqlite, redis, memory", c.Preferences.Backend)
	}
	if c.Preferences.Backend == PrefsRedis && c.Preferences.RedisURL == "" {
		return fmt.Errorf("preferences.redis_url is required for the redis backend")
	}
	if c.Preferences.Backend == PrefsSQLite && c.DataDir == "" {
		return fmt.Errorf("data_dir is required for the sqlite backend")
	}
	if _, err := c.PrefsCacheTTL(); err != nil {
		return err
	}

	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be console or json", c.Log.Format)
	}

	return nil
}

// SessionTTL returns the idle lifetime of a display session.
func (c *Config) SessionTTL() (time.Duration, error) {
	return parseDuration("server.session_ttl", c.Server.SessionTTL, 30*time.Minute)
}

// PrefsCacheTTL returns how long preference reads are cached in memory.
// Zero disables the cache.
func (c *Config) PrefsCacheTTL() (time.Duration, error) {
	return parseDuration("preferences.cache_ttl", c.Preferences.CacheTTL, 0)
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must be non-negative", key)
	}
	return d, nil
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderGoogle:
		return "GOOGLE_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderMiniMax:
		return "MINIMAX_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	default:
		return ""
	}
}

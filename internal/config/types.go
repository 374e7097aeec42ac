package config

// ProviderType identifies an LLM chat provider.
type ProviderType string

const (
	ProviderGoogle     ProviderType = "google"
	ProviderOpenAI     ProviderType = "openai"
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOllama     ProviderType = "ollama"
	ProviderMiniMax    ProviderType = "minimax"
	ProviderOpenRouter ProviderType = "openrouter"
)

// PrefsBackend selects where visitor preferences are persisted.
type PrefsBackend string

const (
	PrefsSQLite PrefsBackend = "sqlite"
	PrefsRedis  PrefsBackend = "redis"
	PrefsMemory PrefsBackend = "memory"
)

// Config is the top-level nebuladocs configuration, corresponding to .nebuladocs.yml.
type Config struct {
	SiteName    string           `yaml:"site_name" koanf:"site_name"`
	ContentDir  string           `yaml:"content_dir" koanf:"content_dir"`
	DataDir     string           `yaml:"data_dir" koanf:"data_dir"`
	Server      ServerConfig     `yaml:"server" koanf:"server"`
	Assistant   AssistantConfig  `yaml:"assistant" koanf:"assistant"`
	Preferences PreferenceConfig `yaml:"preferences" koanf:"preferences"`
	Log         LogConfig        `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port       int    `yaml:"port" koanf:"port"`
	AllowAll   bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	SessionTTL string `yaml:"session_ttl" koanf:"session_ttl"`
}

// AssistantConfig configures the assistant panel and its chat provider.
type AssistantConfig struct {
	Enabled           bool         `yaml:"enabled" koanf:"enabled"`
	Name              string       `yaml:"name" koanf:"name"`
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	Temperature       float64      `yaml:"temperature" koanf:"temperature"`
	RequestsPerMinute int          `yaml:"requests_per_minute" koanf:"requests_per_minute"`
}

// PreferenceConfig selects the preference storage backend.
type PreferenceConfig struct {
	Backend  PrefsBackend `yaml:"backend" koanf:"backend"`
	RedisURL string       `yaml:"redis_url" koanf:"redis_url"`
	CacheTTL string       `yaml:"cache_ttl" koanf:"cache_ttl"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
	File   string `yaml:"file" koanf:"file"`
}

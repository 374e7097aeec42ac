package config

// defaultModels maps each provider to the chat model used when none is configured.
var defaultModels = map[ProviderType]string{
	ProviderGoogle:     "gemini-2.5-flash",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderAnthropic:  "claude-haiku-4-5-20251001",
	ProviderOllama:     "llama3",
	ProviderMiniMax:    "MiniMax-M2.5-highspeed",
	ProviderOpenRouter: "google/gemini-2.5-flash",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteName: "Nebula UI",
		DataDir:  ".nebuladocs",
		Server: ServerConfig{
			Port:       8080,
			SessionTTL: "30m",
		},
		Assistant: AssistantConfig{
			Enabled:           true,
			Name:              "Nebula AI",
			Provider:          ProviderGoogle,
			Model:             defaultModels[ProviderGoogle],
			Temperature:       0.3,
			RequestsPerMinute: 30,
		},
		Preferences: PreferenceConfig{
			Backend:  PrefsSQLite,
			CacheTTL: "10m",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultModel returns the chat model used for the given provider when the
// configuration leaves it blank. Unknown providers get the Gemini default.
func DefaultModel(provider ProviderType) string {
	if m, ok := defaultModels[provider]; ok {
		return m
	}
	return defaultModels[ProviderGoogle]
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to nebuladocs! Let's configure your documentation site.")
	fmt.Println()

	cfg := DefaultConfig()

	namePrompt := promptui.Prompt{
		Label:   "Site name",
		Default: cfg.SiteName,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site name: %w", err)
	}
	cfg.SiteName = strings.TrimSpace(name)

	contentPrompt := promptui.Prompt{
		Label:   "Content directory (leave blank for the built-in sample docs)",
		Default: "",
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.ContentDir = strings.TrimSpace(contentDir)

	providerPrompt := promptui.Select{
		Label: "Select assistant provider",
		Items: []string{"google", "openai", "anthropic", "ollama", "openrouter", "minimax", "disabled"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	if providerStr == "disabled" {
		cfg.Assistant.Enabled = false
	} else {
		cfg.Assistant.Provider = ProviderType(providerStr)

		modelPrompt := promptui.Prompt{
			Label:   "Chat model",
			Default: DefaultModel(cfg.Assistant.Provider),
		}
		model, err := modelPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("model: %w", err)
		}
		cfg.Assistant.Model = strings.TrimSpace(model)
	}

	backendPrompt := promptui.Select{
		Label: "Where should visitor preferences be stored?",
		Items: []string{
			"sqlite — local file in the data directory",
			"redis  — shared across server replicas",
			"memory — forgotten on restart",
		},
	}
	backendIdx, _, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("preferences backend: %w", err)
	}
	cfg.Preferences.Backend = []PrefsBackend{PrefsSQLite, PrefsRedis, PrefsMemory}[backendIdx]

	if cfg.Preferences.Backend == PrefsRedis {
		redisPrompt := promptui.Prompt{
			Label:   "Redis URL",
			Default: "redis://localhost:6379/0",
		}
		url, err := redisPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		cfg.Preferences.RedisURL = strings.TrimSpace(url)
	}

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			if _, err := strconv.Atoi(s); err != nil {
				return fmt.Errorf("port must be a number")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Assistant.Enabled {
		if envVar := APIKeyEnvVar(cfg.Assistant.Provider); envVar != "" && os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before starting the assistant.\n", envVar)
		}
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

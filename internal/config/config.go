package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kevinfinalboss/corsair/pkg/types"
	"gopkg.in/yaml.v3"
)

const (
	// Variáveis de ambiente que carregam credenciais. Os valores são opacos:
	// nunca aparecem em log, plano de simulação ou arquivo de configuração.
	EnvSourceUsername   = "CORSAIR_SOURCE_USERNAME"
	EnvSourcePassword   = "CORSAIR_SOURCE_PASSWORD"
	EnvDestinationToken = "CORSAIR_DESTINATION_TOKEN"
)

func Load(configFile string) (*types.Config, error) {
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configFile = filepath.Join(home, ".corsair", "config.yaml")
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := GetDefaultConfig()
			mergeEnvCredentials(cfg)
			return cfg, nil
		}
		return nil, err
	}

	var config types.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	mergeEnvCredentials(&config)
	return &config, nil
}

func GetDefaultConfig() *types.Config {
	config := &types.Config{
		Source: types.SourceConfig{
			DefaultRegistry: "docker.io",
		},
		Destination: types.DestinationConfig{
			Type: "generic",
		},
		Settings: types.SettingsConfig{
			Language:     "pt-BR",
			LogLevel:     "info",
			DryRun:       false,
			Concurrency:  3,
			SkipExisting: true,
			Architecture: "amd64",
		},
		Webhooks: types.WebhookConfig{
			Discord: types.DiscordWebhookConfig{
				Enabled: false,
				Name:    "Corsair 🏴‍☠️",
			},
		},
	}

	applyDefaults(config)
	return config
}

func applyDefaults(config *types.Config) {
	if config.Source.DefaultRegistry == "" {
		config.Source.DefaultRegistry = "docker.io"
	}
	if config.Destination.Type == "" {
		config.Destination.Type = "generic"
	}
	if config.Settings.Language == "" {
		config.Settings.Language = "pt-BR"
	}
	if config.Settings.LogLevel == "" {
		config.Settings.LogLevel = "info"
	}
	if config.Settings.Concurrency == 0 {
		config.Settings.Concurrency = 3
	}
	if config.Settings.Architecture == "" {
		config.Settings.Architecture = "amd64"
	}
	if config.Settings.CopyTimeout == 0 {
		config.Settings.CopyTimeout = 10 * time.Minute
	}
	if config.Settings.ProbeTimeout == 0 {
		config.Settings.ProbeTimeout = 15 * time.Second
	}
	if config.Settings.CachePath == "" {
		// Sempre ancorado no home, nunca no diretório corrente de quem chama,
		// para que execuções de lugares diferentes vejam o mesmo cache.
		if home, err := os.UserHomeDir(); err == nil {
			config.Settings.CachePath = filepath.Join(home, ".corsair", "synced-images.txt")
		}
	}
	if config.Webhooks.Discord.Name == "" {
		config.Webhooks.Discord.Name = "Corsair 🏴‍☠️"
	}
}

func mergeEnvCredentials(config *types.Config) {
	if v := os.Getenv(EnvSourceUsername); v != "" {
		config.Source.Username = v
	}
	if v := os.Getenv(EnvSourcePassword); v != "" {
		config.Source.Password = v
	}
	if v := os.Getenv(EnvDestinationToken); v != "" {
		config.Destination.Token = v
	}
}

func Save(config *types.Config, configFile string) error {
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configDir := filepath.Join(home, ".corsair")
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return err
		}
		configFile = filepath.Join(configDir, "config.yaml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configFile, data, 0644)
}

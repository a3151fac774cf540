package types

import "time"

type Config struct {
	Source      SourceConfig      `yaml:"source"`
	Destination DestinationConfig `yaml:"destination"`
	Settings    SettingsConfig    `yaml:"settings"`
	Webhooks    WebhookConfig     `yaml:"webhooks"`
}

type SourceConfig struct {
	DefaultRegistry string `yaml:"default_registry"`

	// Preenchidos a partir do ambiente, nunca serializados.
	Username string `yaml:"-"`
	Password string `yaml:"-"`
}

type DestinationConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Org      string `yaml:"org"`
	Project  string `yaml:"project"`
	Insecure bool   `yaml:"insecure"`

	// ECR
	Region    string   `yaml:"region"`
	AccountID string   `yaml:"account_id"`
	Profiles  []string `yaml:"profiles"`
	AccessKey string   `yaml:"access_key"`
	SecretKey string   `yaml:"secret_key"`

	// Preenchido a partir do ambiente, nunca serializado.
	Token string `yaml:"-"`
}

type SettingsConfig struct {
	Language     string        `yaml:"language"`
	LogLevel     string        `yaml:"log_level"`
	DryRun       bool          `yaml:"dry_run"`
	Concurrency  int           `yaml:"concurrency"`
	SkipExisting bool          `yaml:"skip_existing"`
	Architecture string        `yaml:"architecture"`
	CachePath    string        `yaml:"cache_path"`
	CopyTimeout  time.Duration `yaml:"copy_timeout"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
}

type WebhookConfig struct {
	Discord DiscordWebhookConfig `yaml:"discord"`
}

type DiscordWebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Name    string `yaml:"name"`
	Avatar  string `yaml:"avatar"`
}

// Credential cobre os dois esquemas aceitos pelos registries: usuário+senha
// (basic) quando Username não é vazio, senão Secret é um bearer token.
type Credential struct {
	Username string
	Secret   string
}

func (c Credential) Empty() bool {
	return c.Username == "" && c.Secret == ""
}

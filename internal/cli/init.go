package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Inicializa a configuração do Corsair",
	Long:  "Cria o arquivo de configuração inicial em ~/.corsair/config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

const exampleConfig = `source:
  default_registry: "docker.io"  # registry assumido quando a referência não traz um

destination:
  type: "generic"   # generic | ecr
  host: "registry.example.com"
  org: "minha-org"
  project: "espelho"
  # region: "us-east-1"     # para ECR
  # account_id: ""          # para ECR (descoberto via STS quando vazio)

settings:
  language: "pt-BR"
  log_level: "info"
  concurrency: 3
  skip_existing: true
  architecture: "amd64"
  # cache_path: ""          # padrão: ~/.corsair/synced-images.txt
  # copy_timeout: 10m
  # probe_timeout: 15s

webhooks:
  discord:
    enabled: false
    url: ""

# Credenciais vêm do ambiente, nunca deste arquivo:
#   CORSAIR_SOURCE_USERNAME / CORSAIR_SOURCE_PASSWORD (origens privadas)
#   CORSAIR_DESTINATION_TOKEN (bearer token do destino)
`

func initConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Error("operation_failed").Err(err).Send()
		return err
	}

	configDir := filepath.Join(home, ".corsair")
	configFile := filepath.Join(configDir, "config.yaml")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		log.Error("operation_failed").Err(err).Send()
		return err
	}

	if _, err := os.Stat(configFile); err == nil {
		log.Warn("config_already_exists").
			Str("file", configFile).
			Send()
		return nil
	}

	if err := os.WriteFile(configFile, []byte(exampleConfig), 0644); err != nil {
		log.Error("operation_failed").Err(err).Send()
		return err
	}

	log.Info("config_created").
		Str("file", configFile).
		Send()

	return nil
}

package cli

import (
	"fmt"

	"github.com/kevinfinalboss/corsair/internal/config"
	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	language string
	logLevel string
	dryRun   bool
	log      *logger.Logger
	cfg      *types.Config
)

var rootCmd = &cobra.Command{
	Use:   "corsair",
	Short: "Espelha imagens de container para um registry de destino",
	Long: `Corsair copia imagens de container de registries de origem arbitrários para
um registry de destino, a partir de uma lista de referências. Reexecuções são
idempotentes: imagens já sincronizadas são puladas, e cada execução produz um
relatório legível com o desfecho de cada referência.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("erro ao carregar configuração: %w", err)
		}

		if language != "" {
			cfg.Settings.Language = language
		}
		if logLevel != "" {
			cfg.Settings.LogLevel = logLevel
		}
		if cmd.Flags().Changed("dry-run") {
			cfg.Settings.DryRun = dryRun
		}

		log = logger.NewWithConfig(cfg)

		if cfgFile == "" {
			log.Debug("config_not_found").Send()
		} else {
			log.Info("config_loaded").Str("file", cfgFile).Send()
		}

		log.Info("app_started").
			Str("language", cfg.Settings.Language).
			Bool("dry_run", cfg.Settings.DryRun).
			Send()

		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "arquivo de configuração (padrão: ~/.corsair/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&language, "language", "", "idioma dos logs (pt-BR, en-US)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "nível de log (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "resolver os planos de cópia sem executar nada")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
}

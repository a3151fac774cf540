package cli

import (
	"context"

	"github.com/kevinfinalboss/corsair/internal/cache"
	"github.com/kevinfinalboss/corsair/internal/registry"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Verifica o registry de destino e o cache local",
	Long:  "Testa a conectividade com o registry de destino e mostra o estado do cache de imagens sincronizadas",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus()
	},
}

func showStatus() error {
	ctx := context.Background()

	reg, err := registry.New(&cfg.Destination, cfg.Settings.ProbeTimeout, log)
	if err != nil {
		log.Error("operation_failed").Err(err).Send()
		return err
	}

	if err := reg.IsHealthy(ctx); err != nil {
		log.Error("destination_unhealthy").
			Str("registry", reg.GetName()).
			Str("type", reg.GetType()).
			Err(err).
			Send()
		return err
	}

	log.Info("destination_healthy").
		Str("registry", reg.GetName()).
		Str("type", reg.GetType()).
		Str("endpoint", reg.Endpoint()).
		Send()

	syncedCache, err := cache.Open(cfg.Settings.CachePath, log)
	if err != nil {
		log.Warn("operation_failed").Err(err).Send()
		return nil
	}
	defer syncedCache.Close()

	log.Info("cache_loaded").
		Str("path", syncedCache.Path()).
		Int("entries", syncedCache.Len()).
		Send()

	return nil
}

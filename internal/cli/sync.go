package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/kevinfinalboss/corsair/internal/cache"
	"github.com/kevinfinalboss/corsair/internal/imagelist"
	"github.com/kevinfinalboss/corsair/internal/mirror"
	"github.com/kevinfinalboss/corsair/internal/registry"
	"github.com/kevinfinalboss/corsair/internal/reporter"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/spf13/cobra"
)

var (
	syncFile         string
	syncArch         string
	syncConcurrency  int
	syncSkipExisting bool
	syncTag          string
	syncPlatform     string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sincroniza uma lista de imagens com o registry de destino",
	Long: `Lê um arquivo com uma referência de imagem por linha (linhas com '#' são
comentário) e copia cada uma para o registry de destino configurado. O código
de saída é diferente de zero quando pelo menos uma imagem falha; imagens
puladas nunca contam como falha.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd)
	},
}

func init() {
	syncCmd.Flags().StringVarP(&syncFile, "file", "f", "", "arquivo com a lista de imagens (obrigatório)")
	syncCmd.Flags().StringVar(&syncArch, "arch", "", "arquitetura alvo (padrão: amd64)")
	syncCmd.Flags().IntVar(&syncConcurrency, "concurrency", 0, "número de cópias simultâneas")
	syncCmd.Flags().BoolVar(&syncSkipExisting, "skip-existing", true, "pular imagens já presentes no destino")
	syncCmd.Flags().StringVar(&syncTag, "tag", "", "força esta tag para todas as referências")
	syncCmd.Flags().StringVar(&syncPlatform, "platform", "", "força este registry de origem para todas as referências")
	syncCmd.MarkFlagRequired("file")
}

func runSync(cmd *cobra.Command) error {
	ctx := context.Background()

	if syncArch != "" {
		cfg.Settings.Architecture = syncArch
	}
	if syncConcurrency > 0 {
		cfg.Settings.Concurrency = syncConcurrency
	}
	if cmd.Flags().Changed("skip-existing") {
		cfg.Settings.SkipExisting = syncSkipExisting
	}

	refs, err := imagelist.Load(syncFile)
	if err != nil {
		log.Error("operation_failed").Err(err).Send()
		return err
	}

	log.Info("list_loaded").
		Str("file", syncFile).
		Int("references", len(refs)).
		Send()

	reg, err := registry.New(&cfg.Destination, cfg.Settings.ProbeTimeout, log)
	if err != nil {
		log.Error("operation_failed").Err(err).Send()
		return err
	}

	var syncedCache *cache.SyncedCache
	if !cfg.Settings.DryRun {
		syncedCache, err = cache.Open(cfg.Settings.CachePath, log)
		if err != nil {
			// Sem cache a execução continua, só mais lenta.
			log.Warn("operation_failed").Err(err).Send()
		} else {
			defer syncedCache.Close()
		}
	}

	copier, err := mirror.NewCopier(log)
	if err != nil {
		log.Error("operation_failed").Err(err).Send()
		return err
	}

	engine := mirror.NewEngine(copier, reg, syncedCache, log, cfg)
	engine.SetOverrides(types.Overrides{Platform: syncPlatform, Tag: syncTag})

	rep, err := reporter.NewMarkdownReporter(log)
	if err != nil {
		// A sincronização vale mais que o relatório.
		log.Warn("report_failed").Err(err).Send()
	} else {
		engine.SetReporter(rep)
	}

	summary, err := engine.Run(ctx, refs, filepath.Base(syncFile))
	if err != nil {
		return err
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d de %d imagens falharam na sincronização", summary.FailureCount, summary.TotalImages)
	}

	return nil
}

package mirror

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kevinfinalboss/corsair/internal/cache"
	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/internal/registry"
	"github.com/kevinfinalboss/corsair/internal/reporter"
	"github.com/kevinfinalboss/corsair/internal/webhook"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

// Engine distribui a lista de referências para o pipeline de item único
// (parse → oráculo → cópia) sob um pool limitado de workers e agrega os
// desfechos num RunSummary. O lote é fail-open: a falha de uma referência
// nunca aborta as demais; só configuração de destino inválida aborta antes
// de qualquer item rodar.
type Engine struct {
	copier      Copier
	registry    registry.Registry
	cache       *cache.SyncedCache
	oracle      *Oracle
	reporter    *reporter.MarkdownReporter
	discord     *webhook.DiscordWebhook
	logger      *logger.Logger
	config      *types.Config
	concurrency int
	overrides   types.Overrides
}

func NewEngine(copier Copier, reg registry.Registry, syncedCache *cache.SyncedCache, log *logger.Logger, cfg *types.Config) *Engine {
	concurrency := 3
	if cfg.Settings.Concurrency > 0 {
		concurrency = cfg.Settings.Concurrency
	}

	engine := &Engine{
		copier:      copier,
		registry:    reg,
		cache:       syncedCache,
		oracle:      NewOracle(syncedCache, reg, copier, log),
		logger:      log,
		config:      cfg,
		concurrency: concurrency,
	}

	if cfg.Webhooks.Discord.Enabled && cfg.Webhooks.Discord.URL != "" {
		engine.discord = webhook.NewDiscordWebhook(cfg.Webhooks.Discord, log)
		log.Info("webhook_enabled").
			Str("url", maskWebhookURL(cfg.Webhooks.Discord.URL)).
			Send()
	}

	return engine
}

// SetReporter habilita a gravação do relatório no fim da execução.
func (e *Engine) SetReporter(r *reporter.MarkdownReporter) {
	e.reporter = r
}

// SetOverrides aplica tag/plataforma forçadas a todas as referências do lote.
func (e *Engine) SetOverrides(o types.Overrides) {
	e.overrides = o
}

func (e *Engine) Run(ctx context.Context, refs []string, sourceList string) (*types.RunSummary, error) {
	summary := &types.RunSummary{
		RunID:        uuid.NewString(),
		SourceList:   sourceList,
		Architecture: e.config.Settings.Architecture,
		DryRun:       e.config.Settings.DryRun,
		StartedAt:    time.Now(),
		Results:      make([]*types.SyncResult, 0, len(refs)),
	}

	if err := e.validateDestination(); err != nil {
		e.logger.Error("destination_missing").Err(err).Send()
		if e.discord != nil {
			e.discord.SendError(ctx, err.Error(), "Configuração de destino")
		}
		return nil, err
	}

	if len(refs) == 0 {
		e.logger.Info("empty_image_list").Send()
		summary.FinishedAt = time.Now()
		return summary, nil
	}

	summary.TotalImages = len(refs)
	e.logRunStart(summary)

	if e.discord != nil && !summary.DryRun {
		if err := e.discord.SendRunStart(ctx, summary); err != nil {
			e.logger.Warn("webhook_failed").Err(err).Send()
		}
	}

	if e.config.Settings.DryRun {
		e.dryRun(refs, summary)
		e.finalize(ctx, summary)
		e.logger.Info("dry_run_completed").
			Int("total", summary.TotalImages).
			Send()
		return summary, nil
	}

	semaphore := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, raw := range refs {
		wg.Add(1)
		go func(raw string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result := e.syncImage(ctx, raw)

			mu.Lock()
			summary.Results = append(summary.Results, result)
			e.updateSummaryCounters(summary, result)
			mu.Unlock()
		}(raw)
	}

	wg.Wait()

	e.finalize(ctx, summary)
	e.logRunComplete(summary)

	return summary, nil
}

// syncImage processa uma referência até o desfecho terminal. Todo erro é
// capturado aqui e vira um SyncResult com falha classificada; nada propaga.
func (e *Engine) syncImage(ctx context.Context, raw string) *types.SyncResult {
	start := time.Now()

	source := types.ParseReference(raw, e.config.Source.DefaultRegistry, e.overrides)
	dest := source.Destination(e.registry.Endpoint(), e.config.Destination.Org, e.config.Destination.Project)

	result := &types.SyncResult{
		Reference: raw,
		Source:    source,
		Target:    dest.String(),
	}

	e.logger.Debug("reference_parsed").
		Str("reference", raw).
		Str("platform", source.Platform).
		Str("repository", source.Repository).
		Str("tag", source.Tag).
		Str("target", result.Target).
		Send()

	timeout := e.config.Settings.CopyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	itemCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if e.config.Settings.SkipExisting && e.oracle.Exists(itemCtx, dest) {
		e.logger.Info("image_skipped_exists").
			Str("target", result.Target).
			Send()
		result.Skipped = true
		result.Reason = "imagem já existe no destino"
		result.Duration = time.Since(start)
		return result
	}

	destCred, err := e.registry.Credentials(itemCtx)
	if err != nil {
		return e.failed(result, start, fmt.Errorf("falha ao resolver credencial de destino: %w", err))
	}

	if err := e.registry.PreparePush(itemCtx, dest.RepositoryPath()); err != nil {
		e.logger.Warn("operation_failed").
			Str("target", result.Target).
			Err(err).
			Send()
	}

	e.logger.Info("image_sync_start").
		Str("source", source.String()).
		Str("target", result.Target).
		Str("arch", e.config.Settings.Architecture).
		Send()

	req := CopyRequest{
		Source:       source,
		Target:       dest,
		Architecture: e.config.Settings.Architecture,
		SourceCred: types.Credential{
			Username: e.config.Source.Username,
			Secret:   e.config.Source.Password,
		},
		DestCred: destCred,
	}

	if err := e.copier.Copy(itemCtx, req); err != nil {
		if errors.Is(itemCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%v: %w", err, context.DeadlineExceeded)
		}
		return e.failed(result, start, err)
	}

	if e.cache != nil {
		e.cache.Record(result.Target)
	}

	result.Success = true
	result.Duration = time.Since(start)

	e.logger.Info("image_sync_success").
		Str("source", source.String()).
		Str("target", result.Target).
		Dur("duration", result.Duration).
		Send()

	return result
}

func (e *Engine) failed(result *types.SyncResult, start time.Time, err error) *types.SyncResult {
	result.Error = err
	result.Kind = Classify(err)
	result.Reason = err.Error()
	result.Duration = time.Since(start)

	e.logger.Error("image_sync_failed").
		Str("source", result.Source.String()).
		Str("target", result.Target).
		Str("kind", string(result.Kind)).
		Err(err).
		Send()

	return result
}

func (e *Engine) finalize(ctx context.Context, summary *types.RunSummary) {
	summary.FinishedAt = time.Now()

	// Simulação não deixa rastro: nem webhook, nem arquivo de relatório.
	if summary.DryRun {
		return
	}

	if e.discord != nil {
		if err := e.discord.SendRunComplete(ctx, summary); err != nil {
			e.logger.Warn("webhook_failed").Err(err).Send()
		}
	}

	if e.reporter != nil {
		reportPath, err := e.reporter.WriteReport(summary)
		if err != nil {
			e.logger.Warn("report_failed").Err(err).Send()
		} else {
			e.logger.Info("report_ready").
				Str("path", reportPath).
				Send()
		}
	}
}

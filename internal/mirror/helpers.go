package mirror

import (
	"fmt"

	"github.com/kevinfinalboss/corsair/pkg/types"
)

func (e *Engine) validateDestination() error {
	dest := e.config.Destination

	var missing []string
	if e.registry.Endpoint() == "" {
		missing = append(missing, "host")
	}
	if dest.Org == "" {
		missing = append(missing, "org")
	}
	if dest.Project == "" {
		missing = append(missing, "project")
	}

	if len(missing) > 0 {
		return fmt.Errorf("configuração de destino incompleta, faltando: %v", missing)
	}
	return nil
}

func (e *Engine) updateSummaryCounters(summary *types.RunSummary, result *types.SyncResult) {
	switch {
	case result.Skipped:
		summary.SkippedCount++
	case result.Success:
		summary.SuccessCount++
	default:
		summary.FailureCount++
		if result.Error != nil {
			summary.Errors = append(summary.Errors, result.Error)
		}
	}

	e.logger.Debug("summary_counter_updated").
		Str("target", result.Target).
		Int("success", summary.SuccessCount).
		Int("failures", summary.FailureCount).
		Int("skipped", summary.SkippedCount).
		Send()
}

func (e *Engine) logRunStart(summary *types.RunSummary) {
	e.logger.Info("sync_started").
		Str("run_id", summary.RunID).
		Str("source_list", summary.SourceList).
		Str("arch", summary.Architecture).
		Int("total_images", summary.TotalImages).
		Int("concurrency", e.concurrency).
		Bool("skip_existing", e.config.Settings.SkipExisting).
		Bool("dry_run", summary.DryRun).
		Str("copier", e.copier.Name()).
		Str("destination", e.registry.Endpoint()).
		Send()
}

func (e *Engine) logRunComplete(summary *types.RunSummary) {
	e.logger.Info("sync_completed").
		Str("run_id", summary.RunID).
		Int("total", summary.TotalImages).
		Int("success", summary.SuccessCount).
		Int("failures", summary.FailureCount).
		Int("skipped", summary.SkippedCount).
		Dur("duration", summary.FinishedAt.Sub(summary.StartedAt)).
		Send()
}

func maskWebhookURL(url string) string {
	if len(url) < 20 {
		return "***"
	}
	return url[:20] + "***"
}

package mirror

import (
	"time"

	"github.com/kevinfinalboss/corsair/pkg/types"
)

// dryRun resolve cada referência até o plano de comando e para aí: nenhum
// processo externo roda, nada entra no cache, nenhum registry é tocado.
func (e *Engine) dryRun(refs []string, summary *types.RunSummary) {
	for _, raw := range refs {
		source := types.ParseReference(raw, e.config.Source.DefaultRegistry, e.overrides)
		dest := source.Destination(e.registry.Endpoint(), e.config.Destination.Org, e.config.Destination.Project)

		req := CopyRequest{
			Source:       source,
			Target:       dest,
			Architecture: e.config.Settings.Architecture,
			SourceCred: types.Credential{
				Username: e.config.Source.Username,
				Secret:   e.config.Source.Password,
			},
			DestCred: types.Credential{Secret: e.config.Destination.Token},
		}

		plan := e.copier.Plan(req)

		e.logger.Info("dry_run_plan").
			Str("source", source.String()).
			Str("target", dest.String()).
			Strs("commands", plan).
			Send()

		result := &types.SyncResult{
			Reference: raw,
			Source:    source,
			Target:    dest.String(),
			Success:   true,
			Plan:      plan,
			Duration:  time.Duration(0),
		}

		summary.Results = append(summary.Results, result)
		summary.SuccessCount++
	}
}

package reporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/samber/lo"
)

// MarkdownReporter renderiza um RunSummary como documento autocontido, pronto
// para colar verbatim num ticket. A ordem das seções é fixa: metadados →
// contagem → falhas (expandidas, são acionáveis) → sucessos → ignoradas.
type MarkdownReporter struct {
	logger     *logger.Logger
	reportsDir string
}

func NewMarkdownReporter(log *logger.Logger) (*MarkdownReporter, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("falha ao resolver diretório de relatórios: %w", err)
	}

	reportsDir := filepath.Join(home, ".corsair", "reports")
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return nil, fmt.Errorf("falha ao criar diretório de relatórios %s: %w", reportsDir, err)
	}

	return &MarkdownReporter{
		logger:     log,
		reportsDir: reportsDir,
	}, nil
}

type reportItem struct {
	Index  int
	Target string
	Source string
	Reason string
}

type reportData struct {
	Title        string
	RunID        string
	SourceList   string
	Architecture string
	Mode         string
	StartedAt    string
	FinishedAt   string
	Duration     string
	Total        int
	Success      int
	Failed       int
	Skipped      int
	FailedItems  []reportItem
	SuccessItems []reportItem
	SkippedItems []reportItem
}

const reportTemplate = `# {{.Title}}

| Campo | Valor |
|---|---|
| Execução | ` + "`{{.RunID}}`" + ` |
| Lista de origem | {{.SourceList}} |
| Arquitetura | {{.Architecture}} |
| Modo | {{.Mode}} |
| Início | {{.StartedAt}} |
| Fim | {{.FinishedAt}} |
| Duração | {{.Duration}} |

## Contagem

| Total | Sucesso | Falha | Ignoradas |
|---|---|---|---|
| {{.Total}} | {{.Success}} | {{.Failed}} | {{.Skipped}} |

## Falhas ({{.Failed}})
{{- if .FailedItems}}
{{range .FailedItems}}{{.Index}}. ` + "`{{.Target}}`" + ` — {{.Reason}} (origem: ` + "`{{.Source}}`" + `)
{{end}}
{{- else}}

Nenhuma falha.
{{- end}}

<details>
<summary>Sucessos ({{.Success}})</summary>

{{range .SuccessItems}}{{.Index}}. ` + "`{{.Target}}`" + `
{{end}}
</details>

<details>
<summary>Ignoradas ({{.Skipped}})</summary>

{{range .SkippedItems}}{{.Index}}. ` + "`{{.Target}}`" + `
{{end}}
</details>
`

// Render é pura e determinística para o mesmo resumo.
func (r *MarkdownReporter) Render(summary *types.RunSummary) (string, error) {
	data := buildReportData(summary)

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("falha ao compilar template do relatório: %w", err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("falha ao renderizar relatório: %w", err)
	}

	return sb.String(), nil
}

func (r *MarkdownReporter) WriteReport(summary *types.RunSummary) (string, error) {
	content, err := r.Render(summary)
	if err != nil {
		return "", err
	}

	prefix := "corsair-report"
	if summary.DryRun {
		prefix = "corsair-dryrun"
	}
	filename := fmt.Sprintf("%s-%s.md", prefix, summary.StartedAt.Format("2006-01-02_15-04-05"))
	reportPath := filepath.Join(r.reportsDir, filename)

	if err := os.WriteFile(reportPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("falha ao salvar relatório: %w", err)
	}

	return reportPath, nil
}

func buildReportData(summary *types.RunSummary) reportData {
	failed := lo.Filter(summary.Results, func(res *types.SyncResult, _ int) bool {
		return !res.Success && !res.Skipped
	})
	succeeded := lo.Filter(summary.Results, func(res *types.SyncResult, _ int) bool {
		return res.Success
	})
	skipped := lo.Filter(summary.Results, func(res *types.SyncResult, _ int) bool {
		return res.Skipped
	})

	toItem := func(res *types.SyncResult, i int) reportItem {
		reason := res.Reason
		if res.Kind != "" {
			reason = fmt.Sprintf("[%s] %s", res.Kind, reason)
		}
		return reportItem{
			Index:  i + 1,
			Target: res.Target,
			Source: res.Source.String(),
			Reason: reason,
		}
	}

	mode := "sincronização"
	title := "Relatório de Sincronização de Imagens"
	if summary.DryRun {
		mode = "simulação (dry-run)"
		title = "Relatório de Simulação de Sincronização"
	}

	return reportData{
		Title:        title,
		RunID:        summary.RunID,
		SourceList:   summary.SourceList,
		Architecture: summary.Architecture,
		Mode:         mode,
		StartedAt:    summary.StartedAt.Format(time.RFC3339),
		FinishedAt:   summary.FinishedAt.Format(time.RFC3339),
		Duration:     summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond).String(),
		Total:        summary.TotalImages,
		Success:      summary.SuccessCount,
		Failed:       summary.FailureCount,
		Skipped:      summary.SkippedCount,
		FailedItems:  lo.Map(failed, toItem),
		SuccessItems: lo.Map(succeeded, toItem),
		SkippedItems: lo.Map(skipped, toItem),
	}
}

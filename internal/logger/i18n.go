package logger

import "strings"

func embeddedMessages(language string) map[string]string {
	switch strings.ToLower(language) {
	case "pt-br":
		return map[string]string{
			"app_started":              "Corsair iniciado",
			"config_not_found":         "Arquivo de configuração não encontrado, usando padrões",
			"config_loaded":            "Configuração carregada",
			"config_created":           "Arquivo de configuração criado",
			"config_already_exists":    "Arquivo de configuração já existe",
			"list_loaded":              "Lista de imagens carregada",
			"empty_image_list":         "Lista de imagens vazia, nada a fazer",
			"sync_started":             "Sincronização iniciada",
			"sync_completed":           "Sincronização concluída",
			"image_sync_start":         "Copiando imagem",
			"image_sync_success":       "Imagem copiada",
			"image_sync_failed":        "Falha ao copiar imagem",
			"image_skipped_exists":     "Imagem já existe no destino, ignorando",
			"dry_run_plan":             "Simulação: comando que seria executado",
			"dry_run_completed":        "Simulação concluída, nenhuma alteração feita",
			"cache_loaded":             "Cache de imagens sincronizadas carregado",
			"cache_append_failed":      "Falha ao gravar no cache",
			"probe_result":             "Resultado da sonda de manifesto",
			"inspect_fallback":         "Sonda inconclusiva, inspecionando manifesto via tool",
			"copier_selected":          "Backend de cópia selecionado",
			"local_cleanup_failed":     "Falha na limpeza de imagem local",
			"local_cleanup_done":       "Imagem local removida",
			"destination_missing":      "Configuração de destino incompleta",
			"destination_healthy":      "Registry de destino acessível",
			"destination_unhealthy":    "Registry de destino inacessível",
			"ecr_auth_failed":          "Falha na autenticação ECR",
			"ecr_repository_created":   "Repositório ECR criado",
			"ecr_repository_check":     "Verificando repositório ECR",
			"report_ready":             "Relatório gravado",
			"report_failed":            "Falha ao gravar relatório",
			"webhook_enabled":          "Webhook Discord habilitado",
			"webhook_failed":           "Falha ao enviar webhook",
			"operation_completed":      "Operação concluída",
			"operation_failed":         "Operação falhou",
			"summary_counter_updated":  "Contador do resumo atualizado",
			"reference_parsed":         "Referência interpretada",
		}
	default:
		return map[string]string{
			"app_started":              "Corsair started",
			"config_not_found":         "Configuration file not found, using defaults",
			"config_loaded":            "Configuration loaded",
			"config_created":           "Configuration file created",
			"config_already_exists":    "Configuration file already exists",
			"list_loaded":              "Image list loaded",
			"empty_image_list":         "Image list is empty, nothing to do",
			"sync_started":             "Synchronization started",
			"sync_completed":           "Synchronization completed",
			"image_sync_start":         "Copying image",
			"image_sync_success":       "Image copied",
			"image_sync_failed":        "Failed to copy image",
			"image_skipped_exists":     "Image already present at destination, skipping",
			"dry_run_plan":             "Dry run: command that would be executed",
			"dry_run_completed":        "Dry run completed, no changes made",
			"cache_loaded":             "Synced-image cache loaded",
			"cache_append_failed":      "Failed to append to cache",
			"probe_result":             "Manifest probe result",
			"inspect_fallback":         "Probe inconclusive, inspecting manifest via tool",
			"copier_selected":          "Copy backend selected",
			"local_cleanup_failed":     "Local image cleanup failed",
			"local_cleanup_done":       "Local image removed",
			"destination_missing":      "Destination configuration incomplete",
			"destination_healthy":      "Destination registry reachable",
			"destination_unhealthy":    "Destination registry unreachable",
			"ecr_auth_failed":          "ECR authentication failed",
			"ecr_repository_created":   "ECR repository created",
			"ecr_repository_check":     "Checking ECR repository",
			"report_ready":             "Report written",
			"report_failed":            "Failed to write report",
			"webhook_enabled":          "Discord webhook enabled",
			"webhook_failed":           "Failed to deliver webhook",
			"operation_completed":      "Operation completed",
			"operation_failed":         "Operation failed",
			"summary_counter_updated":  "Summary counter updated",
			"reference_parsed":         "Reference parsed",
		}
	}
}

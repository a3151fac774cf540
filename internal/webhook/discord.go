package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

type DiscordWebhook struct {
	url    string
	name   string
	avatar string
	logger *logger.Logger
	client *http.Client
}

type DiscordMessage struct {
	Username  string         `json:"username,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Content   string         `json:"content,omitempty"`
	Embeds    []DiscordEmbed `json:"embeds,omitempty"`
}

type DiscordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
	Footer      *DiscordEmbedFooter `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type DiscordEmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

func NewDiscordWebhook(config types.DiscordWebhookConfig, logger *logger.Logger) *DiscordWebhook {
	name := config.Name
	if name == "" {
		name = "Corsair 🏴‍☠️"
	}

	return &DiscordWebhook{
		url:    config.URL,
		name:   name,
		avatar: config.Avatar,
		logger: logger,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *DiscordWebhook) SendRunStart(ctx context.Context, summary *types.RunSummary) error {
	operation := "🚀 SINCRONIZAÇÃO INICIADA"
	color := 0x00ff00

	if summary.DryRun {
		operation = "🧪 SIMULAÇÃO INICIADA"
		color = 0xffaa00
	}

	embed := DiscordEmbed{
		Title:       operation,
		Description: "Iniciando cópia de imagens para o registry de destino",
		Color:       color,
		Fields: []DiscordEmbedField{
			{
				Name:   "📦 Imagens",
				Value:  fmt.Sprintf("%d referências na lista", summary.TotalImages),
				Inline: true,
			},
			{
				Name:   "🏗️ Arquitetura",
				Value:  summary.Architecture,
				Inline: true,
			},
			{
				Name:   "📄 Lista",
				Value:  summary.SourceList,
				Inline: true,
			},
		},
		Footer: &DiscordEmbedFooter{
			Text: fmt.Sprintf("Corsair Sync Engine • %s", summary.RunID),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return d.send(ctx, DiscordMessage{
		Username:  d.name,
		AvatarURL: d.avatar,
		Embeds:    []DiscordEmbed{embed},
	})
}

func (d *DiscordWebhook) SendRunComplete(ctx context.Context, summary *types.RunSummary) error {
	operation := "✅ SINCRONIZAÇÃO CONCLUÍDA"
	color := 0x00ff00

	if summary.DryRun {
		operation = "✅ SIMULAÇÃO CONCLUÍDA"
		color = 0x0099ff
	}
	if summary.FailureCount > 0 {
		operation = "⚠️ SINCRONIZAÇÃO COM FALHAS"
		color = 0xff6600
	}

	description := fmt.Sprintf("Processo finalizado com %d sucessos", summary.SuccessCount)
	if summary.FailureCount > 0 {
		description += fmt.Sprintf(" e %d falhas", summary.FailureCount)
	}
	if summary.SkippedCount > 0 {
		description += fmt.Sprintf(" (%d ignoradas)", summary.SkippedCount)
	}

	embed := DiscordEmbed{
		Title:       operation,
		Description: description,
		Color:       color,
		Fields: []DiscordEmbedField{
			{
				Name: "📊 Resultados",
				Value: fmt.Sprintf("```\nTotal:     %d\nSucesso:   %d\nFalha:     %d\nIgnoradas: %d\n```",
					summary.TotalImages, summary.SuccessCount, summary.FailureCount, summary.SkippedCount),
				Inline: false,
			},
			{
				Name:   "⏱️ Duração",
				Value:  summary.FinishedAt.Sub(summary.StartedAt).Round(time.Second).String(),
				Inline: true,
			},
		},
		Footer: &DiscordEmbedFooter{
			Text: fmt.Sprintf("Corsair Sync Engine • %s", summary.RunID),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return d.send(ctx, DiscordMessage{
		Username:  d.name,
		AvatarURL: d.avatar,
		Embeds:    []DiscordEmbed{embed},
	})
}

func (d *DiscordWebhook) SendError(ctx context.Context, message, scope string) error {
	embed := DiscordEmbed{
		Title:       "❌ ERRO FATAL",
		Description: message,
		Color:       0xff0000,
		Fields: []DiscordEmbedField{
			{
				Name:   "Contexto",
				Value:  scope,
				Inline: true,
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return d.send(ctx, DiscordMessage{
		Username:  d.name,
		AvatarURL: d.avatar,
		Embeds:    []DiscordEmbed{embed},
	})
}

func (d *DiscordWebhook) send(ctx context.Context, message DiscordMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("falha ao serializar mensagem Discord: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("falha ao enviar webhook Discord: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook Discord retornou status %d", resp.StatusCode)
	}

	return nil
}

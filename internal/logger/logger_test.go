package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMessage_LocalizedLookup(t *testing.T) {
	ptBR := newLogger(parseLogLevel("info"), "pt-BR")
	enUS := newLogger(parseLogLevel("info"), "en-US")

	assert.NotEqual(t, ptBR.GetMessage("sync_started"), enUS.GetMessage("sync_started"))
	assert.NotEmpty(t, ptBR.GetMessage("sync_started"))
}

func TestGetMessage_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	log := newLogger(parseLogLevel("info"), "fr-FR")
	enUS := newLogger(parseLogLevel("info"), "en-US")

	assert.Equal(t, enUS.GetMessage("sync_started"), log.GetMessage("sync_started"))
}

func TestGetMessage_UnknownKeyReturnsKey(t *testing.T) {
	log := New()
	assert.Equal(t, "chave_que_nao_existe", log.GetMessage("chave_que_nao_existe"))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "debug"},
		{"INFO", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"inexistente", "info"},
		{"", "info"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLogLevel(tt.input).String(), tt.input)
	}
}

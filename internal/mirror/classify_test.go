package mirror

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected types.FailureKind
	}{
		{
			"credencial inválida",
			errors.New("skopeo copy falhou: unauthorized: incorrect username or password"),
			types.FailureAuth,
		},
		{
			"token rejeitado",
			errors.New("Error response from daemon: Get \"https://registry/v2/\": 401 Unauthorized"),
			types.FailureAuth,
		},
		{
			"arquitetura indisponível",
			errors.New("no image found in manifest list for architecture arm64, variant \"\", OS linux"),
			types.FailureArchUnavailable,
		},
		{
			"plataforma divergente",
			errors.New("image platform (linux/amd64) does not match the specified platform (linux/arm64)"),
			types.FailureArchUnavailable,
		},
		{
			"host inexistente",
			errors.New("dial tcp: lookup registry.example.com: no such host"),
			types.FailureNetwork,
		},
		{
			"conexão recusada",
			errors.New("dial tcp 10.0.0.1:443: connect: connection refused"),
			types.FailureNetwork,
		},
		{
			"prazo estourado no contexto",
			fmt.Errorf("skopeo copy falhou: %w", context.DeadlineExceeded),
			types.FailureTimeout,
		},
		{
			"timeout no texto da tool",
			errors.New("net/http: request canceled (Client.Timeout exceeded while awaiting headers)"),
			types.FailureTimeout,
		},
		{
			"push negado",
			errors.New("denied: requested access to the resource is denied"),
			types.FailureRejected,
		},
		{
			"quota excedida",
			errors.New("denied: quota exceeded"),
			types.FailureRejected,
		},
		{
			"mensagem não reconhecida",
			errors.New("algo inesperado aconteceu"),
			types.FailureUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.err))
		})
	}
}

func TestClassify_NilError(t *testing.T) {
	assert.Equal(t, types.FailureKind(""), Classify(nil))
}

// "unauthorized" precisa vencer "denied" mesmo quando os dois marcadores
// aparecem juntos na saída da tool.
func TestClassify_AuthBeforeRejected(t *testing.T) {
	err := errors.New("unauthorized: access to the requested resource is denied")
	assert.Equal(t, types.FailureAuth, Classify(err))
}

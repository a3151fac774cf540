package mirror

import (
	"context"
	"errors"
	"strings"

	"github.com/kevinfinalboss/corsair/pkg/types"
)

// Classify mapeia a saída do backend de cópia para uma FailureKind. A
// classificação trabalha sobre o texto do erro porque as tools externas só
// expõem isso; padrões desconhecidos viram FailureUnknown, nunca pânico.
func Classify(err error) types.FailureKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return types.FailureTimeout
	}

	msg := strings.ToLower(err.Error())

	switch {
	case containsAny(msg,
		"unauthorized",
		"authentication required",
		"incorrect username or password",
		"invalid username/password",
		"401"):
		return types.FailureAuth

	case containsAny(msg,
		"no image found in manifest list for architecture",
		"does not match the specified platform",
		"no matching manifest for"):
		return types.FailureArchUnavailable

	case containsAny(msg,
		"timeout",
		"timed out",
		"deadline exceeded"):
		return types.FailureTimeout

	case containsAny(msg,
		"no such host",
		"connection refused",
		"connection reset",
		"network is unreachable",
		"tls handshake",
		"unexpected eof"):
		return types.FailureNetwork

	case containsAny(msg,
		"denied",
		"forbidden",
		"insufficient_scope",
		"quota",
		"403"):
		return types.FailureRejected
	}

	return types.FailureUnknown
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

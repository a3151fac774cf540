package registry

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

// Presence é o resultado tri-estado de uma sonda de existência. Unknown nunca
// encerra a cascata: a próxima estratégia decide.
type Presence int

const (
	PresenceUnknown Presence = iota
	PresenceExists
	PresenceAbsent
)

func (p Presence) String() string {
	switch p {
	case PresenceExists:
		return "exists"
	case PresenceAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// Registry é o registry de destino de uma execução.
type Registry interface {
	GetName() string
	GetType() string
	// Endpoint é o host usado nas referências de imagem.
	Endpoint() string
	// Credentials resolve a credencial de escrita do destino.
	Credentials(ctx context.Context) (types.Credential, error)
	IsHealthy(ctx context.Context) error
	// HasManifest sonda o manifesto de uma tag sem baixar camadas. Falha de
	// rede ou status inesperado viram PresenceUnknown, nunca erro.
	HasManifest(ctx context.Context, repositoryPath, tag string) Presence
	// PreparePush garante o que o registry exigir antes de um push (por
	// exemplo, criação de repositório no ECR). No-op para registries comuns.
	PreparePush(ctx context.Context, repositoryPath string) error
}

func New(cfg *types.DestinationConfig, probeTimeout time.Duration, log *logger.Logger) (Registry, error) {
	switch cfg.Type {
	case "", "generic":
		return NewGenericRegistry(cfg, probeTimeout, log)
	case "ecr":
		return NewECRRegistry(cfg, log)
	default:
		return nil, fmt.Errorf("tipo de registry de destino não suportado: %s", cfg.Type)
	}
}

func createHTTPClient(insecure bool, timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: insecure,
			},
		},
	}
}

package registry

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

// GenericRegistry fala o protocolo Registry v2 direto, autenticando com o
// bearer token do ambiente. Cobre Harbor, GHCR, registries self-hosted e
// qualquer outro destino compatível com a API de distribuição.
type GenericRegistry struct {
	name       string
	host       string
	token      string
	insecure   bool
	logger     *logger.Logger
	httpClient *http.Client
}

func NewGenericRegistry(cfg *types.DestinationConfig, probeTimeout time.Duration, log *logger.Logger) (*GenericRegistry, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("registry de destino sem host configurado")
	}

	return &GenericRegistry{
		name:       cfg.Host,
		host:       strings.TrimSuffix(cfg.Host, "/"),
		token:      cfg.Token,
		insecure:   cfg.Insecure,
		logger:     log,
		httpClient: createHTTPClient(cfg.Insecure, probeTimeout),
	}, nil
}

func (r *GenericRegistry) GetName() string {
	return r.name
}

func (r *GenericRegistry) GetType() string {
	return "generic"
}

// Endpoint é o host como aparece nas referências de imagem, sem esquema.
func (r *GenericRegistry) Endpoint() string {
	host := strings.TrimPrefix(r.host, "https://")
	return strings.TrimPrefix(host, "http://")
}

func (r *GenericRegistry) Credentials(ctx context.Context) (types.Credential, error) {
	return types.Credential{Secret: r.token}, nil
}

func (r *GenericRegistry) baseURL() string {
	if strings.HasPrefix(r.host, "http://") || strings.HasPrefix(r.host, "https://") {
		return r.host
	}
	if r.insecure {
		return "http://" + r.host
	}
	return "https://" + r.host
}

func (r *GenericRegistry) authorize(req *http.Request) {
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
}

func (r *GenericRegistry) IsHealthy(ctx context.Context) error {
	url := r.baseURL() + "/v2/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	r.authorize(req)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("falha na conexão com registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusUnauthorized {
		return fmt.Errorf("registry retornou status %d", resp.StatusCode)
	}

	return nil
}

func (r *GenericRegistry) HasManifest(ctx context.Context, repositoryPath, tag string) Presence {
	url := fmt.Sprintf("%s/v2/%s/manifests/%s", r.baseURL(), repositoryPath, tag)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return PresenceUnknown
	}
	r.authorize(req)
	req.Header.Set("Accept", strings.Join([]string{
		"application/vnd.docker.distribution.manifest.v2+json",
		"application/vnd.docker.distribution.manifest.list.v2+json",
		"application/vnd.oci.image.manifest.v1+json",
		"application/vnd.oci.image.index.v1+json",
	}, ", "))

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Debug("probe_result").
			Str("repository", repositoryPath).
			Str("tag", tag).
			Str("presence", PresenceUnknown.String()).
			Err(err).
			Send()
		return PresenceUnknown
	}
	defer resp.Body.Close()

	var presence Presence
	switch {
	case resp.StatusCode == http.StatusOK:
		presence = PresenceExists
	case resp.StatusCode == http.StatusNotFound:
		presence = PresenceAbsent
	default:
		presence = PresenceUnknown
	}

	r.logger.Debug("probe_result").
		Str("repository", repositoryPath).
		Str("tag", tag).
		Int("status", resp.StatusCode).
		Str("presence", presence.String()).
		Send()

	return presence
}

func (r *GenericRegistry) PreparePush(ctx context.Context, repositoryPath string) error {
	return nil
}

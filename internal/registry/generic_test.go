package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, handler http.Handler, token string) (*GenericRegistry, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	reg, err := NewGenericRegistry(&types.DestinationConfig{
		Host:  server.URL,
		Token: token,
	}, 5*time.Second, logger.NewTest())
	require.NoError(t, err)
	return reg, server
}

func TestGenericRegistry_HasManifest(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected Presence
	}{
		{"manifesto existe", http.StatusOK, PresenceExists},
		{"manifesto ausente", http.StatusNotFound, PresenceAbsent},
		{"sem permissão de leitura", http.StatusUnauthorized, PresenceUnknown},
		{"erro do servidor", http.StatusInternalServerError, PresenceUnknown},
		{"limite de requisições", http.StatusTooManyRequests, PresenceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, _ := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodHead, r.Method)
				assert.Equal(t, "/v2/mirror/apps/nginx/manifests/latest", r.URL.Path)
				w.WriteHeader(tt.status)
			}), "")

			presence := reg.HasManifest(context.Background(), "mirror/apps/nginx", "latest")
			assert.Equal(t, tt.expected, presence)
		})
	}
}

func TestGenericRegistry_HasManifest_SendsAuthAndAccept(t *testing.T) {
	reg, _ := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Accept"), "application/vnd.oci.image.index.v1+json")
		assert.Contains(t, r.Header.Get("Accept"), "application/vnd.docker.distribution.manifest.v2+json")
		w.WriteHeader(http.StatusOK)
	}), "tok-abc")

	presence := reg.HasManifest(context.Background(), "mirror/apps/nginx", "latest")
	assert.Equal(t, PresenceExists, presence)
}

func TestGenericRegistry_HasManifest_NetworkErrorIsUnknown(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	reg, err := NewGenericRegistry(&types.DestinationConfig{Host: server.URL}, time.Second, logger.NewTest())
	require.NoError(t, err)

	presence := reg.HasManifest(context.Background(), "mirror/apps/nginx", "latest")
	assert.Equal(t, PresenceUnknown, presence)
}

func TestGenericRegistry_IsHealthy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		healthy bool
	}{
		{"registry aberto", http.StatusOK, true},
		{"registry exige autenticação", http.StatusUnauthorized, true},
		{"registry indisponível", http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, _ := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v2/", r.URL.Path)
				w.WriteHeader(tt.status)
			}), "")

			err := reg.IsHealthy(context.Background())
			if tt.healthy {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGenericRegistry_EndpointStripsScheme(t *testing.T) {
	reg, server := newTestRegistry(t, http.NotFoundHandler(), "")

	endpoint := reg.Endpoint()
	assert.False(t, strings.Contains(endpoint, "://"))
	assert.Equal(t, strings.TrimPrefix(server.URL, "http://"), endpoint)
}

func TestNewGenericRegistry_RequiresHost(t *testing.T) {
	_, err := NewGenericRegistry(&types.DestinationConfig{}, time.Second, logger.NewTest())
	assert.Error(t, err)
}

func TestGenericRegistry_Credentials(t *testing.T) {
	reg, _ := newTestRegistry(t, http.NotFoundHandler(), "tok-abc")

	cred, err := reg.Credentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.Credential{Secret: "tok-abc"}, cred)
}

package mirror

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kevinfinalboss/corsair/internal/cache"
	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/internal/registry"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testDestination() types.Destination {
	return types.Destination{
		Registry: "registry.example.com",
		Org:      "mirror",
		Project:  "apps",
		Basename: "nginx",
		Tag:      "latest",
	}
}

func testCache(t *testing.T) *cache.SyncedCache {
	t.Helper()
	c, err := cache.Open(filepath.Join(t.TempDir(), "synced-images.txt"), logger.NewTest())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestOracle_CacheHitSkipsNetwork(t *testing.T) {
	dest := testDestination()

	c := testCache(t)
	c.Record(dest.String())

	reg := new(MockRegistry)
	inspector := new(MockCopier)

	oracle := NewOracle(c, reg, inspector, logger.NewTest())
	assert.True(t, oracle.Exists(context.Background(), dest))

	reg.AssertNotCalled(t, "HasManifest", mock.Anything, mock.Anything, mock.Anything)
	inspector.AssertNotCalled(t, "Inspect", mock.Anything, mock.Anything, mock.Anything)
}

func TestOracle_ProbeExistsRecordsCache(t *testing.T) {
	dest := testDestination()

	reg := new(MockRegistry)
	reg.On("HasManifest", mock.Anything, "mirror/apps/nginx", "latest").Return(registry.PresenceExists)

	c := testCache(t)
	oracle := NewOracle(c, reg, new(MockCopier), logger.NewTest())

	assert.True(t, oracle.Exists(context.Background(), dest))
	assert.True(t, c.Has(dest.String()))
	reg.AssertExpectations(t)
}

func TestOracle_ProbeAbsentStopsCascade(t *testing.T) {
	reg := new(MockRegistry)
	reg.On("HasManifest", mock.Anything, mock.Anything, mock.Anything).Return(registry.PresenceAbsent)

	inspector := new(MockCopier)

	oracle := NewOracle(testCache(t), reg, inspector, logger.NewTest())
	assert.False(t, oracle.Exists(context.Background(), testDestination()))

	inspector.AssertNotCalled(t, "Inspect", mock.Anything, mock.Anything, mock.Anything)
}

func TestOracle_UnknownFallsBackToInspector(t *testing.T) {
	dest := testDestination()

	reg := new(MockRegistry)
	reg.On("HasManifest", mock.Anything, mock.Anything, mock.Anything).Return(registry.PresenceUnknown)
	reg.On("Credentials", mock.Anything).Return(types.Credential{Secret: "tok-abc"}, nil)

	inspector := new(MockCopier)
	inspector.On("Inspect", mock.Anything, dest.String(), types.Credential{Secret: "tok-abc"}).
		Return(registry.PresenceExists)

	c := testCache(t)
	oracle := NewOracle(c, reg, inspector, logger.NewTest())

	assert.True(t, oracle.Exists(context.Background(), dest))
	assert.True(t, c.Has(dest.String()))
	inspector.AssertExpectations(t)
}

// Quando nenhum estágio confirma nada, a resposta é "não existe": a cópia é
// tentada e o desfecho real vem da tool.
func TestOracle_AllUnknownMeansAbsent(t *testing.T) {
	reg := new(MockRegistry)
	reg.On("HasManifest", mock.Anything, mock.Anything, mock.Anything).Return(registry.PresenceUnknown)
	reg.On("Credentials", mock.Anything).Return(types.Credential{}, nil)

	inspector := new(MockCopier)
	inspector.On("Inspect", mock.Anything, mock.Anything, mock.Anything).Return(registry.PresenceUnknown)

	c := testCache(t)
	oracle := NewOracle(c, reg, inspector, logger.NewTest())

	dest := testDestination()
	assert.False(t, oracle.Exists(context.Background(), dest))
	assert.False(t, c.Has(dest.String()))
}

func TestOracle_NilInspector(t *testing.T) {
	reg := new(MockRegistry)
	reg.On("HasManifest", mock.Anything, mock.Anything, mock.Anything).Return(registry.PresenceUnknown)

	oracle := NewOracle(testCache(t), reg, nil, logger.NewTest())
	assert.False(t, oracle.Exists(context.Background(), testDestination()))
}

package cache

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncedCache_RecordAndHas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synced-images.txt")

	c, err := Open(path, logger.NewTest())
	require.NoError(t, err)
	defer c.Close()

	assert.False(t, c.Has("registry.example.com/mirror/apps/nginx:latest"))

	c.Record("registry.example.com/mirror/apps/nginx:latest")
	assert.True(t, c.Has("registry.example.com/mirror/apps/nginx:latest"))
	assert.Equal(t, 1, c.Len())
}

func TestSyncedCache_RecordIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synced-images.txt")

	c, err := Open(path, logger.NewTest())
	require.NoError(t, err)

	c.Record("registry.example.com/mirror/apps/nginx:latest")
	c.Record("registry.example.com/mirror/apps/nginx:latest")
	c.Record("registry.example.com/mirror/apps/nginx:latest")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "nginx"))
	assert.Equal(t, 1, c.Len())
}

func TestSyncedCache_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synced-images.txt")

	first, err := Open(path, logger.NewTest())
	require.NoError(t, err)
	first.Record("registry.example.com/mirror/apps/nginx:latest")
	first.Record("registry.example.com/mirror/apps/redis:7")
	require.NoError(t, first.Close())

	second, err := Open(path, logger.NewTest())
	require.NoError(t, err)
	defer second.Close()

	assert.True(t, second.Has("registry.example.com/mirror/apps/nginx:latest"))
	assert.True(t, second.Has("registry.example.com/mirror/apps/redis:7"))
	assert.Equal(t, 2, second.Len())
}

func TestSyncedCache_ConcurrentRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synced-images.txt")

	c, err := Open(path, logger.NewTest())
	require.NoError(t, err)

	var wg sync.WaitGroup
	refs := []string{
		"registry.example.com/mirror/apps/a:1",
		"registry.example.com/mirror/apps/b:1",
		"registry.example.com/mirror/apps/c:1",
		"registry.example.com/mirror/apps/d:1",
		"registry.example.com/mirror/apps/e:1",
	}

	for range [10]struct{}{} {
		for _, ref := range refs {
			wg.Add(1)
			go func(ref string) {
				defer wg.Done()
				c.Record(ref)
			}(ref)
		}
	}
	wg.Wait()
	require.NoError(t, c.Close())

	// Cada append é uma linha inteira: nada de linhas truncadas ou mescladas.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, len(refs))
	for _, line := range lines {
		assert.Contains(t, refs, line)
	}
}

func TestSyncedCache_IgnoresBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synced-images.txt")
	require.NoError(t, os.WriteFile(path, []byte("a:1\n\n  \nb:2\n"), 0644))

	c, err := Open(path, logger.NewTest())
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Has("a:1"))
	assert.True(t, c.Has("b:2"))
}

package imagelist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"# imagens base",
		"nginx:latest",
		"",
		"   ",
		"ghcr.io/graalvm/graalvm-ce:ol9-java11\r",
		"  quay.io/prometheus/node-exporter:v1.7.0  ",
		"# fim",
	}, "\n")

	refs, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"nginx:latest",
		"ghcr.io/graalvm/graalvm-ce:ol9-java11",
		"quay.io/prometheus/node-exporter:v1.7.0",
	}, refs)
}

func TestParse_OnlyCommentsAndBlanks(t *testing.T) {
	input := "# só comentários\n\n   \n\r\n# nada aqui\n"

	refs, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.txt")
	require.NoError(t, os.WriteFile(path, []byte("nginx:latest\nredis:7\n"), 0644))

	refs, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"nginx:latest", "redis:7"}, refs)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nao-existe.txt"))
	assert.Error(t, err)
}

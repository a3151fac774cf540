package cache

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/kevinfinalboss/corsair/internal/logger"
)

// SyncedCache guarda as referências de destino já confirmadas como
// sincronizadas. O arquivo é append-only, uma referência por linha; entradas
// nunca são removidas durante uma execução. O cache é só uma otimização: um
// miss sempre cai para as checagens de rede, e uma entrada obsoleta (imagem
// removida manualmente do registry) não é corrigida automaticamente.
type SyncedCache struct {
	path   string
	refs   mapset.Set[string]
	file   *os.File
	mu     sync.Mutex
	logger *logger.Logger
}

func Open(path string, log *logger.Logger) (*SyncedCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("falha ao criar diretório do cache: %w", err)
	}

	refs := mapset.NewSet[string]()

	existing, err := os.Open(path)
	if err == nil {
		scanner := bufio.NewScanner(existing)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				refs.Add(line)
			}
		}
		existing.Close()
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("falha ao ler cache %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("falha ao abrir cache %s: %w", path, err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir cache %s para escrita: %w", path, err)
	}

	log.Debug("cache_loaded").
		Str("path", path).
		Int("entries", refs.Cardinality()).
		Send()

	return &SyncedCache{
		path:   path,
		refs:   refs,
		file:   file,
		logger: log,
	}, nil
}

func (c *SyncedCache) Has(ref string) bool {
	return c.refs.Contains(ref)
}

// Record acrescenta uma referência confirmada. Idempotente; a escrita no
// arquivo é serializada pelo mutex para que cada append seja uma linha
// inteira mesmo com vários workers gravando.
func (c *SyncedCache) Record(ref string) {
	if ref == "" || !c.refs.Add(ref) {
		return
	}

	c.mu.Lock()
	_, err := c.file.WriteString(ref + "\n")
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("cache_append_failed").
			Str("path", c.path).
			Str("ref", ref).
			Err(err).
			Send()
	}
}

func (c *SyncedCache) Len() int {
	return c.refs.Cardinality()
}

func (c *SyncedCache) Path() string {
	return c.path
}

func (c *SyncedCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file.Close()
}

package imagelist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load lê uma lista de referências, uma por linha. Linhas em branco e linhas
// começando com '#' são ignoradas; CR de arquivos vindos do Windows é tolerado.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir lista de imagens %s: %w", path, err)
	}
	defer file.Close()

	refs, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler lista de imagens %s: %w", path, err)
	}
	return refs, nil
}

func Parse(r io.Reader) ([]string, error) {
	var refs []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimSuffix(scanner.Text(), "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		refs = append(refs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

package types

import (
	"fmt"
	"strings"
)

// ImageReference é o triplo normalizado extraído de uma referência bruta.
type ImageReference struct {
	Platform   string `json:"platform"`
	Repository string `json:"repository"`
	Tag        string `json:"tag"`
}

// Overrides aplicados por cima do que o parser detecta. Campo vazio
// significa "use o valor detectado".
type Overrides struct {
	Platform string
	Tag      string
}

// ParseReference nunca falha: qualquer string vira uma ImageReference
// utilizável, resolvendo ambiguidades pelas regras padrão. Referências
// sem sentido falham mais tarde, na cópia, com a mensagem da própria tool.
func ParseReference(raw string, defaultPlatform string, overrides Overrides) ImageReference {
	if defaultPlatform == "" {
		defaultPlatform = "docker.io"
	}

	ref := ImageReference{
		Platform: defaultPlatform,
		Tag:      "latest",
	}

	working := strings.TrimSpace(raw)

	// Tag: só conta um ':' depois da última '/', senão é porta de registry.
	lastSlash := strings.LastIndex(working, "/")
	if colon := strings.LastIndex(working, ":"); colon > lastSlash {
		ref.Tag = working[colon+1:]
		working = working[:colon]
	}

	// Plataforma: o primeiro segmento é um host quando contém '.' ou ':'.
	if slash := strings.Index(working, "/"); slash > 0 {
		head := working[:slash]
		if strings.Contains(head, ".") || strings.Contains(head, ":") {
			ref.Platform = head
			working = working[slash+1:]
		}
	}

	ref.Repository = strings.TrimLeft(working, "/")

	if overrides.Platform != "" {
		ref.Platform = overrides.Platform
	}
	if overrides.Tag != "" {
		ref.Tag = overrides.Tag
	}
	if ref.Tag == "" {
		ref.Tag = "latest"
	}

	return ref
}

// String devolve a referência completa usada para o pull na origem.
func (r ImageReference) String() string {
	return fmt.Sprintf("%s/%s:%s", r.Platform, r.Repository, r.Tag)
}

// Destination é o caminho totalmente qualificado no registry de destino.
type Destination struct {
	Registry string
	Org      string
	Project  string
	Basename string
	Tag      string
}

// Destination deriva o destino determinístico de uma referência. O achatamento
// (toda '/' do repositório vira '-') garante que dois repositórios de origem
// distintos nunca colidam no mesmo caminho de destino.
func (r ImageReference) Destination(registry, org, project string) Destination {
	return Destination{
		Registry: registry,
		Org:      org,
		Project:  project,
		Basename: strings.ReplaceAll(r.Repository, "/", "-"),
		Tag:      r.Tag,
	}
}

// RepositoryPath é o caminho do repositório dentro do registry, sem host e sem tag.
func (d Destination) RepositoryPath() string {
	return fmt.Sprintf("%s/%s/%s", d.Org, d.Project, d.Basename)
}

func (d Destination) String() string {
	return fmt.Sprintf("%s/%s:%s", d.Registry, d.RepositoryPath(), d.Tag)
}

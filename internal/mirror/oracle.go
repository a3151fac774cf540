package mirror

import (
	"context"

	"github.com/kevinfinalboss/corsair/internal/cache"
	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/internal/registry"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

// Inspector é o último estágio da cascata: inspeção completa de manifesto
// via a tool de cópia. Todo Copier implementa.
type Inspector interface {
	Inspect(ctx context.Context, ref string, cred types.Credential) registry.Presence
}

// Oracle decide se um destino já existe, em cascata de custo crescente:
// cache (sem rede) → sonda de manifesto → inspeção via tool. Cada estágio
// devolve um tri-estado e a cascata para no primeiro resultado confirmado;
// inconclusivo cai para o próximo. Se tudo for inconclusivo a resposta é
// "não existe": tentar a cópia é o comportamento seguro.
type Oracle struct {
	cache     *cache.SyncedCache
	registry  registry.Registry
	inspector Inspector
	logger    *logger.Logger
}

func NewOracle(c *cache.SyncedCache, reg registry.Registry, inspector Inspector, log *logger.Logger) *Oracle {
	return &Oracle{
		cache:     c,
		registry:  reg,
		inspector: inspector,
		logger:    log,
	}
}

func (o *Oracle) Exists(ctx context.Context, dest types.Destination) bool {
	ref := dest.String()

	if o.cache != nil && o.cache.Has(ref) {
		return true
	}

	switch o.registry.HasManifest(ctx, dest.RepositoryPath(), dest.Tag) {
	case registry.PresenceExists:
		o.record(ref)
		return true
	case registry.PresenceAbsent:
		return false
	}

	if o.inspector == nil {
		return false
	}

	o.logger.Debug("inspect_fallback").
		Str("target", ref).
		Send()

	cred, err := o.registry.Credentials(ctx)
	if err != nil {
		cred = types.Credential{}
	}

	switch o.inspector.Inspect(ctx, ref, cred) {
	case registry.PresenceExists:
		o.record(ref)
		return true
	}
	return false
}

// Existência confirmada vira entrada de cache: a próxima execução pula a
// rede, mesmo que a propagação de metadados do registry ainda esteja atrasada.
func (o *Oracle) record(ref string) {
	if o.cache != nil {
		o.cache.Record(ref)
	}
}

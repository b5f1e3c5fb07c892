package cache

import (
	"context"
	"sync"
)

// Entidades que as chaves de cache referenciam. Invalidar uma entidade
// derruba todas as chaves registradas sob ela.
const (
	EntityLeads      = "leads"
	EntityLead       = "lead"
	EntityStatus     = "status_opcoes"
	EntityUsers      = "users"
	EntityInteracoes = "lead_interacoes"
)

// QueryCache guarda resultados de consulta por tupla de parâmetros.
// Cada chave carrega um contador de geração e cada entidade uma época:
// um load que terminar depois de uma invalidação (ou de um load mais
// novo na mesma chave) é descartado em vez de sobrescrever dado fresco
// com dado velho. Invalidate remove chave, geração e registro, para o
// cache não crescer com tuplas de busca que nunca se repetem.
type QueryCache struct {
	mu      sync.Mutex
	entries map[string]any
	gens    map[string]uint64
	epochs  map[string]uint64
	keys    map[string]map[string]struct{} // entidade -> chaves dependentes
}

func New() *QueryCache {
	return &QueryCache{
		entries: make(map[string]any),
		gens:    make(map[string]uint64),
		epochs:  make(map[string]uint64),
		keys:    make(map[string]map[string]struct{}),
	}
}

// GetOrFetch devolve o valor em cache para (entity, key) ou executa o
// loader e guarda o resultado. O loader roda fora do lock; se a chave
// for invalidada (ou recarregada) enquanto ele roda, o resultado é
// devolvido ao chamador mas não entra no cache.
func (c *QueryCache) GetOrFetch(ctx context.Context, entity, key string, loader func(context.Context) (any, error)) (any, error) {
	fullKey := entity + "|" + key

	c.mu.Lock()
	if cached, ok := c.entries[fullKey]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.gens[fullKey]++
	gen := c.gens[fullKey]
	epoch := c.epochs[entity]
	if c.keys[entity] == nil {
		c.keys[entity] = make(map[string]struct{})
	}
	c.keys[entity][fullKey] = struct{}{}
	c.mu.Unlock()

	value, err := loader(ctx)
	if err != nil {
		return nil, err
	}

	// A época pega invalidações (que zeram a geração da chave); a
	// geração pega um load mais novo na mesma chave
	c.mu.Lock()
	if c.epochs[entity] == epoch && c.gens[fullKey] == gen {
		c.entries[fullKey] = value
	}
	c.mu.Unlock()

	return value, nil
}

// Invalidate derruba todas as chaves da entidade, libera os registros e
// avança a época, para que loads em voo não repovoem o cache com dado
// velho.
func (c *QueryCache) Invalidate(entities ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, entity := range entities {
		c.epochs[entity]++
		for fullKey := range c.keys[entity] {
			delete(c.entries, fullKey)
			delete(c.gens, fullKey)
		}
		delete(c.keys, entity)
	}
}

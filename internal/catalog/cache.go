package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Cache loads a catalog from its source once and serves the same value for
// the rest of the process lifetime. A failed load is cached as well.
type Cache struct {
	source  Source
	catalog *Catalog
	err     error
	once    sync.Once
}

// NewCache creates a cache over source.
func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Get returns the catalog, loading it on the first call.
func (c *Cache) Get(ctx context.Context) (*Catalog, error) {
	c.once.Do(func() {
		c.catalog, c.err = c.source.Load(ctx)
		if c.err != nil {
			log.Error().Err(c.err).Msg("Failed to load catalog")
			return
		}
		log.Info().
			Int("symptoms", len(c.catalog.Symptoms)).
			Int("remedies", len(c.catalog.Remedies)).
			Msg("Catalog loaded")
	})
	return c.catalog, c.err
}

package menu

import (
	redis_models "MenuGacha/models/redis"
	"MenuGacha/services/gacha"
	"MenuGacha/services/redis"
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Provider builds the catalog from a Source once and hands the same
// immutable value to every caller until Invalidate is called. When a Redis
// client is configured the loaded records are also shared through it, and
// the in-process copy is dropped as soon as the shared snapshot is replaced,
// deleted or expires.
type Provider struct {
	source Source
	order  []string
	cache  *redis.RedisClient
	ttl    time.Duration

	mu      sync.Mutex
	catalog *gacha.Catalog
	// LoadedAt of the snapshot the catalog was read from or written to
	stamp int64
}

// NewProvider creates a provider. cache may be nil.
func NewProvider(source Source, categoryOrder []string, cache *redis.RedisClient, ttl time.Duration) *Provider {
	return &Provider{
		source: source,
		order:  categoryOrder,
		cache:  cache,
		ttl:    ttl,
	}
}

func (p *Provider) CategoryOrder() []string {
	return p.order
}

// Catalog returns the loaded catalog, loading it on first use
func (p *Provider) Catalog(ctx context.Context) (*gacha.Catalog, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.catalog != nil {
		if p.fresh(ctx) {
			return p.catalog, nil
		}
		log.WithField("source", p.source.Name()).Info("[CATALOG] shared snapshot changed, reloading")
		p.catalog = nil
	}

	if catalog := p.fromCache(ctx); catalog != nil {
		p.catalog = catalog
		return catalog, nil
	}

	records, err := p.source.Records(ctx)
	if err != nil {
		var loadErr *gacha.DataLoadError
		if !errors.As(err, &loadErr) {
			err = gacha.NewDataLoadError(p.source.Name(), err)
		}
		log.WithError(err).Error("[CATALOG] load failed")
		return nil, err
	}

	catalog, err := gacha.NewCatalog(records, p.order)
	if err != nil {
		log.WithError(err).Error("[CATALOG] invalid records")
		return nil, err
	}
	log.WithFields(log.Fields{"source": p.source.Name(), "items": catalog.Len(), "categories": len(catalog.Categories())}).
		Info("[CATALOG] loaded")

	p.toCache(ctx, catalog)
	p.catalog = catalog
	return catalog, nil
}

// Invalidate drops the memoized catalog and its cached copy
func (p *Provider) Invalidate(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.catalog = nil
	p.stamp = 0
	if p.cache == nil {
		return nil
	}
	return p.cache.DeleteCatalogSnapshot(ctx, p.source.Name())
}

// fresh reports whether the memoized catalog still matches the shared
// snapshot. An unreachable Redis keeps the current copy.
func (p *Provider) fresh(ctx context.Context) bool {
	if p.cache == nil {
		return true
	}
	stamp, ok, err := p.cache.GetCatalogStamp(ctx, p.source.Name())
	if err != nil {
		log.WithError(err).Warn("[CATALOG] cache check failed, keeping loaded catalog")
		return true
	}
	return ok && stamp == p.stamp
}

func (p *Provider) fromCache(ctx context.Context) *gacha.Catalog {
	if p.cache == nil {
		return nil
	}
	snapshot, err := p.cache.GetCatalogSnapshot(ctx, p.source.Name())
	if err != nil {
		log.WithError(err).Warn("[CATALOG] cache read failed, loading from source")
		return nil
	}
	if snapshot == nil {
		return nil
	}

	catalog, err := gacha.NewCatalog(snapshot.Items, p.order)
	if err != nil {
		log.WithError(err).Warn("[CATALOG] cached snapshot rejected, loading from source")
		return nil
	}
	log.WithField("items", catalog.Len()).Debug("[CATALOG] loaded from cache")
	p.stamp = snapshot.LoadedAt
	return catalog
}

func (p *Provider) toCache(ctx context.Context, catalog *gacha.Catalog) {
	if p.cache == nil {
		return
	}
	snapshot := &redis_models.CatalogSnapshot{
		Items:      catalog.Items(),
		Categories: catalog.Categories(),
		LoadedAt:   time.Now().UnixNano(),
	}
	if err := p.cache.SaveCatalogSnapshot(ctx, p.source.Name(), snapshot, p.ttl); err != nil {
		log.WithError(err).Warn("[CATALOG] cache write failed")
		return
	}
	p.stamp = snapshot.LoadedAt
}

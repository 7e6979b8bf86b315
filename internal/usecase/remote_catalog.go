package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/storefront/backend/internal/domain"
	"github.com/storefront/backend/internal/infrastructure/fakestore"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// catalogSnapshotKey holds the whole feed; the feed cannot be fetched partially
const catalogSnapshotKey = "catalog:remote:snapshot"

// RemoteCatalogConfig holds configuration for the remote catalog source
type RemoteCatalogConfig struct {
	SnapshotTTL  time.Duration
	FetchTimeout time.Duration
}

// RemoteCatalog serves normalised feed products from a TTL-bounded snapshot
type RemoteCatalog struct {
	client       domain.CatalogClient
	cache        domain.CacheRepository
	snapshotTTL  time.Duration
	fetchTimeout time.Duration
	logger       *zap.Logger

	// fetches collapses concurrent snapshot refills into one feed request
	fetches singleflight.Group
}

// NewRemoteCatalog creates a remote catalog source
func NewRemoteCatalog(
	client domain.CatalogClient,
	cache domain.CacheRepository,
	config RemoteCatalogConfig,
	logger *zap.Logger,
) *RemoteCatalog {
	ttl := config.SnapshotTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	timeout := config.FetchTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RemoteCatalog{
		client:       client,
		cache:        cache,
		snapshotTTL:  ttl,
		fetchTimeout: timeout,
		logger:       logger.Named("remote_catalog"),
	}
}

// Products returns the normalised feed. Failures wrap ErrUpstreamUnavailable.
func (r *RemoteCatalog) Products(ctx context.Context) ([]domain.Product, error) {
	if cached, ok := r.snapshot(ctx); ok {
		return cached, nil
	}

	ch := r.fetches.DoChan(catalogSnapshotKey, func() (interface{}, error) {
		return r.refill(ctx)
	})

	select {
	case <-ctx.Done():
		return nil, upstreamError(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			r.logger.Debug("joined in-flight catalog fetch")
		}
		return cloneProducts(res.Val.([]domain.Product)), nil
	}
}

// refill fetches the feed and stores a new snapshot. It runs once per flight and
// outlives the caller that started it, bounded by the fetch timeout.
func (r *RemoteCatalog) refill(ctx context.Context) ([]domain.Product, error) {
	// a flight that just finished may already have stored the snapshot
	if cached, ok := r.snapshot(ctx); ok {
		return cached, nil
	}

	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.fetchTimeout)
	defer cancel()

	remote, err := r.client.FetchCatalog(fetchCtx)
	if err != nil {
		return nil, upstreamError(err)
	}

	products := fakestore.MapCatalog(remote)
	if err := r.cache.Set(fetchCtx, catalogSnapshotKey, products, r.snapshotTTL); err != nil {
		r.logger.Warn("failed to cache catalog snapshot", zap.Error(err))
	}

	return products, nil
}

// Product looks up one feed item, answering from the snapshot when it holds the id
func (r *RemoteCatalog) Product(ctx context.Context, id string) (*domain.Product, error) {
	if cached, ok := r.snapshot(ctx); ok {
		for i := range cached {
			if cached[i].ID == id {
				return &cached[i], nil
			}
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	remote, err := r.client.FetchProduct(fetchCtx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, upstreamError(err)
	}

	product := fakestore.MapToProduct(*remote)
	return &product, nil
}

// Invalidate drops the snapshot so the next read refetches the feed
func (r *RemoteCatalog) Invalidate(ctx context.Context) error {
	return r.cache.Delete(ctx, catalogSnapshotKey)
}

func (r *RemoteCatalog) snapshot(ctx context.Context) ([]domain.Product, bool) {
	value, err := r.cache.Get(ctx, catalogSnapshotKey)
	if err != nil {
		return nil, false
	}
	products, ok := value.([]domain.Product)
	if !ok {
		return nil, false
	}
	return cloneProducts(products), true
}

func upstreamError(err error) error {
	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
}

// cloneProducts copies the slice so callers can sort and filter without touching the snapshot
func cloneProducts(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CatalogClient defines the interface for the third-party catalog feed
type CatalogClient interface {
	FetchCatalog(ctx context.Context) ([]RemoteProduct, error)
	FetchProduct(ctx context.Context, id string) (*RemoteProduct, error)
}

// LocalFilter restricts a local store query. Empty fields do not filter.
type LocalFilter struct {
	Category   string
	SearchText string
}

// ProductRepository defines the interface for local product persistence
type ProductRepository interface {
	// Find returns stored products matching the filter in insertion order
	Find(ctx context.Context, filter LocalFilter) ([]Product, error)

	// FindByIdentifier matches either the primary key or the legacy id field
	FindByIdentifier(ctx context.Context, id string) (*Product, error)

	Create(ctx context.Context, input ProductInput) (*Product, error)
	Update(ctx context.Context, key string, patch ProductPatch) (*Product, error)
	Delete(ctx context.Context, key string) error

	// AppendReview appends a review and refreshes the aggregate rating atomically
	AppendReview(ctx context.Context, key string, review Review) (*Product, error)
}

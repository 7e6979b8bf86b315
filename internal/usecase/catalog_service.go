package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/storefront/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RemoteSource is the read side of the third-party feed
type RemoteSource interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id string) (*domain.Product, error)
	Invalidate(ctx context.Context) error
}

// CatalogService merges local products with the remote feed
type CatalogService struct {
	store  domain.ProductRepository
	remote RemoteSource
	ranker *RelevanceRanker
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(store domain.ProductRepository, remote RemoteSource, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		store:  store,
		remote: remote,
		ranker: NewRelevanceRanker(1),
		logger: logger.Named("catalog"),
	}
}

// ListProducts returns one page of local products followed by feed products.
// Flow: fetch both sources concurrently -> filter feed by category -> merge -> sort -> paginate
func (s *CatalogService) ListProducts(ctx context.Context, query domain.ListQuery) (*domain.ProductPage, error) {
	query.Normalize()
	category := strings.ToLower(query.Category)
	search := normalizeSearchText(query.Search)

	local, remote, degraded, err := s.fetchBoth(ctx, domain.LocalFilter{
		Category:   category,
		SearchText: search,
	})
	if err != nil {
		return nil, err
	}

	if category != "" {
		remote = filterProducts(remote, func(p *domain.Product) bool {
			return strings.EqualFold(p.Category, category)
		})
	}

	combined := make([]domain.Product, 0, len(local)+len(remote))
	combined = append(combined, local...)
	combined = append(combined, remote...)

	sortProducts(combined, query.Sort)

	total := len(combined)
	return &domain.ProductPage{
		Items:       paginate(combined, query.Page, query.Limit),
		Total:       total,
		PageCount:   pageCount(total, query.Limit),
		CurrentPage: query.Page,
		Limit:       query.Limit,
		Degraded:    degraded,
	}, nil
}

// SearchProducts returns every product matching the query, feed products first
func (s *CatalogService) SearchProducts(ctx context.Context, query domain.SearchQuery) ([]domain.Product, error) {
	text := normalizeSearchText(query.Text)
	category := strings.TrimSpace(query.Category)

	local, remote, _, err := s.fetchBoth(ctx, domain.LocalFilter{})
	if err != nil {
		return nil, err
	}

	combined := make([]domain.Product, 0, len(remote)+len(local))
	combined = append(combined, remote...)
	combined = append(combined, local...)

	results := filterProducts(combined, func(p *domain.Product) bool {
		if text != "" &&
			!containsFold(p.Title, text) &&
			!containsFold(p.Description, text) &&
			!containsFold(p.Category, text) {
			return false
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			return false
		}
		if query.MinPrice != nil && p.Price < *query.MinPrice {
			return false
		}
		if query.MaxPrice != nil && p.Price > *query.MaxPrice {
			return false
		}
		if query.MinRating != nil && p.Rating.Rate < *query.MinRating {
			return false
		}
		return true
	})

	sortKey := query.Sort
	if sortKey == domain.SortNone && text != "" {
		sortKey = domain.SortRelevance
	}
	if sortKey == domain.SortRelevance {
		s.ranker.Sort(results, text)
	} else {
		sortProducts(results, sortKey)
	}

	return results, nil
}

// ResolveProduct finds a single product by namespaced ref or bare id.
// A ref goes straight to its source; a bare id tries the feed, then the local store.
func (s *CatalogService) ResolveProduct(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: product id is required", domain.ErrInvalidRequest)
	}

	if ref, ok := domain.ParseProductRef(id); ok {
		if ref.Source == domain.SourceFrontend {
			return s.remote.Product(ctx, ref.NativeID)
		}
		return s.store.FindByIdentifier(ctx, ref.NativeID)
	}

	product, err := s.remote.Product(ctx, id)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, domain.ErrProductNotFound) {
		s.logger.Warn("remote lookup failed, trying local store",
			zap.String("id", id),
			zap.Error(err),
		)
	}

	return s.store.FindByIdentifier(ctx, id)
}

// InvalidateRemoteCatalog drops the cached feed snapshot
func (s *CatalogService) InvalidateRemoteCatalog(ctx context.Context) error {
	if err := s.remote.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate remote catalog: %w", err)
	}
	s.logger.Info("remote catalog snapshot invalidated")
	return nil
}

// fetchBoth queries the store and the feed concurrently.
// A feed failure degrades to an empty feed; a store failure is returned.
func (s *CatalogService) fetchBoth(ctx context.Context, filter domain.LocalFilter) (local, remote []domain.Product, degraded bool, err error) {
	var remoteErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var findErr error
		local, findErr = s.store.Find(gctx, filter)
		return findErr
	})
	g.Go(func() error {
		remote, remoteErr = s.remote.Products(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		return nil, nil, false, err
	}

	if remoteErr != nil {
		s.logger.Warn("remote catalog unavailable, serving local products only", zap.Error(remoteErr))
		return local, nil, true, nil
	}

	return local, remote, false, nil
}

func filterProducts(products []domain.Product, keep func(*domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		if keep(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}

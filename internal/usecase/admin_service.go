package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/storefront/backend/internal/domain"
	"go.uber.org/zap"
)

// AdminService manages the local product collection
type AdminService struct {
	store  domain.ProductRepository
	logger *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(store domain.ProductRepository, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		store:  store,
		logger: logger.Named("admin"),
	}
}

// CreateProduct validates and stores a new local product
func (s *AdminService) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	input.LegacyID = strings.TrimSpace(input.LegacyID)
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Image = strings.TrimSpace(input.Image)
	input.Category = domain.NormalizeCategory(input.Category)

	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidRequest)
	}
	if err := validateAmounts(&input.Price, &input.Stock); err != nil {
		return nil, err
	}
	if _, isRef := domain.ParseProductRef(input.LegacyID); isRef {
		return nil, fmt.Errorf("%w: id must not carry a source prefix", domain.ErrInvalidRequest)
	}

	product, err := s.store.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.String("key", product.Key), zap.String("title", product.Title))
	return product, nil
}

// UpdateProduct applies a partial update to a local product
func (s *AdminService) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidRequest)
		}
		patch.Title = &title
	}
	if patch.Category != nil {
		category := domain.NormalizeCategory(*patch.Category)
		patch.Category = &category
	}
	if err := validateAmounts(patch.Price, patch.Stock); err != nil {
		return nil, err
	}

	existing, err := findLocalProduct(ctx, s.store, id)
	if err != nil {
		return nil, err
	}

	product, err := s.store.Update(ctx, existing.Key, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("product updated", zap.String("key", product.Key))
	return product, nil
}

// DeleteProduct removes a local product and its reviews
func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	existing, err := findLocalProduct(ctx, s.store, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, existing.Key); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.String("key", existing.Key))
	return nil
}

func validateAmounts(price *float64, stock *int) error {
	if price != nil && *price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidRequest)
	}
	if stock != nil && *stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidRequest)
	}
	return nil
}

// findLocalProduct resolves a bare id or a database ref against the local store.
// Feed products are read-only, so a frontend ref is rejected.
func findLocalProduct(ctx context.Context, store domain.ProductRepository, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: product id is required", domain.ErrInvalidRequest)
	}

	if ref, ok := domain.ParseProductRef(id); ok {
		if ref.Source != domain.SourceDatabase {
			return nil, fmt.Errorf("%w: feed products cannot be modified", domain.ErrInvalidRequest)
		}
		id = ref.NativeID
	}

	return store.FindByIdentifier(ctx, id)
}

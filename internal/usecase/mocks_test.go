package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/storefront/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu        sync.Mutex
	data      map[string]interface{}
	setError  error
	setCalled int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]interface{}),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalled++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockCatalogClient is a mock implementation of domain.CatalogClient
type MockCatalogClient struct {
	catalog      []domain.RemoteProduct
	catalogError error
	product      *domain.RemoteProduct
	productError error

	catalogCalls int
	productCalls int
	lastID       string
}

func (m *MockCatalogClient) FetchCatalog(ctx context.Context) ([]domain.RemoteProduct, error) {
	m.catalogCalls++
	if m.catalogError != nil {
		return nil, m.catalogError
	}
	return m.catalog, nil
}

func (m *MockCatalogClient) FetchProduct(ctx context.Context, id string) (*domain.RemoteProduct, error) {
	m.productCalls++
	m.lastID = id
	if m.productError != nil {
		return nil, m.productError
	}
	if m.product == nil {
		return nil, domain.ErrProductNotFound
	}
	return m.product, nil
}

// MockRemoteSource is a mock implementation of RemoteSource
type MockRemoteSource struct {
	products     []domain.Product
	productsErr  error
	byID         map[string]domain.Product
	productErr   error
	invalidated  bool
	productCalls int
}

func (m *MockRemoteSource) Products(ctx context.Context) ([]domain.Product, error) {
	if m.productsErr != nil {
		return nil, m.productsErr
	}
	return cloneProducts(m.products), nil
}

func (m *MockRemoteSource) Product(ctx context.Context, id string) (*domain.Product, error) {
	m.productCalls++
	if m.productErr != nil {
		return nil, m.productErr
	}
	if p, ok := m.byID[id]; ok {
		return &p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockRemoteSource) Invalidate(ctx context.Context) error {
	m.invalidated = true
	return nil
}

// MockProductRepository is a mock implementation of domain.ProductRepository
type MockProductRepository struct {
	products  []domain.Product
	findErr   error
	lookupErr error

	lastFilter  domain.LocalFilter
	created     *domain.ProductInput
	updatedKey  string
	lastPatch   domain.ProductPatch
	deletedKey  string
	appendedKey string
	appended    *domain.Review
	appendErr   error
}

func (m *MockProductRepository) Find(ctx context.Context, filter domain.LocalFilter) ([]domain.Product, error) {
	m.lastFilter = filter
	if m.findErr != nil {
		return nil, m.findErr
	}
	return cloneProducts(m.products), nil
}

func (m *MockProductRepository) FindByIdentifier(ctx context.Context, id string) (*domain.Product, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	for _, p := range m.products {
		if p.Key == id || p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	m.created = &input
	return &domain.Product{
		ID:       "01J0NEWPRODUCT",
		Key:      "01J0NEWPRODUCT",
		Ref:      "database:01J0NEWPRODUCT",
		Title:    input.Title,
		Price:    input.Price,
		Category: input.Category,
		Stock:    input.Stock,
		Source:   domain.SourceDatabase,
	}, nil
}

func (m *MockProductRepository) Update(ctx context.Context, key string, patch domain.ProductPatch) (*domain.Product, error) {
	m.updatedKey = key
	m.lastPatch = patch
	for _, p := range m.products {
		if p.Key == key {
			if patch.Title != nil {
				p.Title = *patch.Title
			}
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) Delete(ctx context.Context, key string) error {
	m.deletedKey = key
	return nil
}

func (m *MockProductRepository) AppendReview(ctx context.Context, key string, review domain.Review) (*domain.Product, error) {
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	m.appendedKey = key
	m.appended = &review
	for _, p := range m.products {
		if p.Key == key {
			p.Reviews = append(p.Reviews, review)
			p.Rating = domain.Rating{Rate: float64(review.Rating), Count: len(p.Reviews)}
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// localProduct builds a store record the way the postgres adapter does
func localProduct(key, title, category string, price float64) domain.Product {
	return domain.Product{
		ID:       key,
		Key:      key,
		Ref:      "database:" + key,
		Title:    title,
		Category: category,
		Price:    price,
		Source:   domain.SourceDatabase,
	}
}

// feedProduct builds a normalised feed item
func feedProduct(id, title, category string, price float64) domain.Product {
	return domain.Product{
		ID:       id,
		Key:      id,
		Ref:      "frontend:" + id,
		Title:    title,
		Category: category,
		Price:    price,
		Source:   domain.SourceFrontend,
		Stock:    domain.RemoteStockPlaceholder,
	}
}

func timestamp(day int) *time.Time {
	t := time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func floatPtr(v float64) *float64 { return &v }

package http

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/domain"
)

// CatalogUsecase is the read side of the catalog
type CatalogUsecase interface {
	ListProducts(ctx context.Context, query domain.ListQuery) (*domain.ProductPage, error)
	SearchProducts(ctx context.Context, query domain.SearchQuery) ([]domain.Product, error)
	ResolveProduct(ctx context.Context, id string) (*domain.Product, error)
	InvalidateRemoteCatalog(ctx context.Context) error
}

// ReviewUsecase accepts customer reviews
type ReviewUsecase interface {
	SubmitReview(ctx context.Context, user *domain.User, productID string, input domain.ReviewInput) (*domain.Product, error)
}

// AdminUsecase manages local products
type AdminUsecase interface {
	CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog CatalogUsecase
	reviews ReviewUsecase
	admin   AdminUsecase
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog CatalogUsecase, reviews ReviewUsecase, admin AdminUsecase) *Handler {
	return &Handler{
		catalog: catalog,
		reviews: reviews,
		admin:   admin,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "storefront-backend",
		"version": "1.0.0",
	})
}

// ListProducts handles GET /products
func (h *Handler) ListProducts(c *gin.Context) {
	page, err := intQuery(c, "page")
	if err != nil {
		abortWithError(c, err)
		return
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		abortWithError(c, err)
		return
	}
	sort, err := domain.ParseSortKey(c.Query("sort"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := h.catalog.ListProducts(c.Request.Context(), domain.ListQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     sort,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SearchProducts handles GET /products/search
func (h *Handler) SearchProducts(c *gin.Context) {
	sortParam := c.Query("sortBy")
	if sortParam == "" {
		sortParam = c.Query("sort")
	}
	sort, err := domain.ParseSortKey(sortParam)
	if err != nil {
		abortWithError(c, err)
		return
	}

	query := domain.SearchQuery{
		Text:     c.Query("q"),
		Category: c.Query("category"),
		Sort:     sort,
	}
	for param, target := range map[string]**float64{
		"minPrice":  &query.MinPrice,
		"maxPrice":  &query.MaxPrice,
		"minRating": &query.MinRating,
	} {
		value, err := floatQuery(c, param)
		if err != nil {
			abortWithError(c, err)
			return
		}
		*target = value
	}

	results, err := h.catalog.SearchProducts(c.Request.Context(), query)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// GetProduct handles GET /products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalog.ResolveProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateReview handles POST /products/:id/reviews
func (h *Handler) CreateReview(c *gin.Context) {
	var input domain.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	product, err := h.reviews.SubmitReview(c.Request.Context(), currentUser(c), c.Param("id"), input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review added",
		"product": product,
	})
}

// CreateProduct handles POST /products
func (h *Handler) CreateProduct(c *gin.Context) {
	var input domain.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	product, err := h.admin.CreateProduct(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	var patch domain.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	product, err := h.admin.UpdateProduct(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.admin.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}

// InvalidateCatalogCache handles DELETE /products/cache
func (h *Handler) InvalidateCatalogCache(c *gin.Context) {
	if err := h.catalog.InvalidateRemoteCatalog(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Catalog cache cleared"})
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidRequest, name)
	}
	return value, nil
}

func floatQuery(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	// bounds must be finite; NaN compares false against every price
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: %s must be a finite number", domain.ErrInvalidRequest, name)
	}
	return &value, nil
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyReviewed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the error envelope. Server-side failures are logged, not echoed.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.AbortWithStatusJSON(status, errorBody(message))
}

func errorBody(message string) gin.H {
	return gin.H{
		"success": false,
		"error":   message,
	}
}

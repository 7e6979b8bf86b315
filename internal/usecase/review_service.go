package usecase

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/storefront/backend/internal/domain"
	"go.uber.org/zap"
)

const (
	minReviewRating     = 1
	maxReviewRating     = 5
	maxReviewCommentLen = 2000
)

// ReviewService accepts customer reviews for local products
type ReviewService struct {
	store     domain.ProductRepository
	sanitizer *bluemonday.Policy
	now       func() time.Time
	logger    *zap.Logger
}

// NewReviewService creates a review service that strips markup from comments
func NewReviewService(store domain.ProductRepository, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{
		store:     store,
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
		logger:    logger.Named("reviews"),
	}
}

// SubmitReview appends the user's review and returns the product with its refreshed rating.
// Each user may review a product once.
func (s *ReviewService) SubmitReview(
	ctx context.Context,
	user *domain.User,
	productID string,
	input domain.ReviewInput,
) (*domain.Product, error) {
	if user == nil || user.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if input.Rating < minReviewRating || input.Rating > maxReviewRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d",
			domain.ErrInvalidRequest, minReviewRating, maxReviewRating)
	}

	comment := s.sanitizeComment(input.Comment)
	if comment == "" {
		return nil, fmt.Errorf("%w: comment is required", domain.ErrInvalidRequest)
	}

	product, err := findLocalProduct(ctx, s.store, productID)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.AppendReview(ctx, product.Key, domain.Review{
		User:      user.ID,
		Name:      user.Name,
		Rating:    input.Rating,
		Comment:   comment,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("review added",
		zap.String("product", product.Key),
		zap.String("user", user.ID),
		zap.Int("rating", input.Rating),
	)
	return updated, nil
}

// sanitizeComment reduces a comment to plain text
func (s *ReviewService) sanitizeComment(comment string) string {
	cleaned := html.UnescapeString(s.sanitizer.Sanitize(comment))
	cleaned = strings.TrimSpace(multiSpacePattern.ReplaceAllString(cleaned, " "))
	if len(cleaned) > maxReviewCommentLen {
		cleaned = strings.ToValidUTF8(cleaned[:maxReviewCommentLen], "")
	}
	return cleaned
}

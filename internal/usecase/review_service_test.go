package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/storefront/backend/internal/domain"
)

func TestSubmitReview(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: "u1", Name: "Ada", Role: "customer"}
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	newService := func() (*ReviewService, *MockProductRepository) {
		store := &MockProductRepository{products: []domain.Product{
			localProduct("01J0ABCDEF", "Desk", "furniture", 120),
		}}
		svc := NewReviewService(store, nil)
		svc.now = func() time.Time { return fixed }
		return svc, store
	}

	t.Run("appends a sanitised review", func(t *testing.T) {
		svc, store := newService()

		product, err := svc.SubmitReview(ctx, user, "01J0ABCDEF", domain.ReviewInput{
			Rating:  4,
			Comment: "<b>Solid</b>   desk <script>alert(1)</script>& sturdy",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if store.appendedKey != "01J0ABCDEF" {
			t.Errorf("appended key = %v, want 01J0ABCDEF", store.appendedKey)
		}
		if store.appended.Comment != "Solid desk & sturdy" {
			t.Errorf("Comment = %q, want %q", store.appended.Comment, "Solid desk & sturdy")
		}
		if store.appended.User != "u1" || store.appended.Name != "Ada" {
			t.Errorf("review author = %v/%v, want u1/Ada", store.appended.User, store.appended.Name)
		}
		if !store.appended.CreatedAt.Equal(fixed) || store.appended.CreatedAt.Location() != time.UTC {
			t.Errorf("CreatedAt = %v, want %v in UTC", store.appended.CreatedAt, fixed)
		}
		if len(product.Reviews) != 1 || product.Rating.Count != 1 {
			t.Errorf("product = %+v, want one review", product)
		}
	})

	t.Run("accepts a database ref", func(t *testing.T) {
		svc, store := newService()

		_, err := svc.SubmitReview(ctx, user, "database:01J0ABCDEF", domain.ReviewInput{Rating: 5, Comment: "great"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.appendedKey != "01J0ABCDEF" {
			t.Errorf("appended key = %v, want 01J0ABCDEF", store.appendedKey)
		}
	})

	t.Run("requires a user", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.SubmitReview(ctx, nil, "01J0ABCDEF", domain.ReviewInput{Rating: 5, Comment: "great"})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name  string
			input domain.ReviewInput
		}{
			{"rating too low", domain.ReviewInput{Rating: 0, Comment: "meh"}},
			{"rating too high", domain.ReviewInput{Rating: 6, Comment: "wow"}},
			{"blank comment", domain.ReviewInput{Rating: 3, Comment: "   "}},
			{"markup only comment", domain.ReviewInput{Rating: 3, Comment: "<img src=x>"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, store := newService()

				_, err := svc.SubmitReview(ctx, user, "01J0ABCDEF", tt.input)
				if !errors.Is(err, domain.ErrInvalidRequest) {
					t.Errorf("error = %v, want ErrInvalidRequest", err)
				}
				if store.appended != nil {
					t.Error("expected no review to be stored")
				}
			})
		}
	})

	t.Run("feed products do not take reviews", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.SubmitReview(ctx, user, "frontend:1", domain.ReviewInput{Rating: 5, Comment: "great"})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.SubmitReview(ctx, user, "missing", domain.ReviewInput{Rating: 5, Comment: "great"})
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("error = %v, want ErrProductNotFound", err)
		}
	})

	t.Run("second review by the same user", func(t *testing.T) {
		svc, store := newService()
		store.appendErr = domain.ErrAlreadyReviewed

		_, err := svc.SubmitReview(ctx, user, "01J0ABCDEF", domain.ReviewInput{Rating: 5, Comment: "again"})
		if !errors.Is(err, domain.ErrAlreadyReviewed) {
			t.Errorf("error = %v, want ErrAlreadyReviewed", err)
		}
	})
}

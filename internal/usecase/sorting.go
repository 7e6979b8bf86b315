package usecase

import (
	"sort"

	"github.com/storefront/backend/internal/domain"
)

// sortProducts orders products in place by key. Every ordering is stable, so
// ties keep their merged order; SortNone and SortRelevance leave the slice untouched.
func sortProducts(products []domain.Product, key domain.SortKey) {
	var less func(a, b *domain.Product) bool

	switch key {
	case domain.SortPriceAsc:
		less = func(a, b *domain.Product) bool { return a.Price < b.Price }
	case domain.SortPriceDesc:
		less = func(a, b *domain.Product) bool { return a.Price > b.Price }
	case domain.SortRatingDesc:
		less = func(a, b *domain.Product) bool { return a.Rating.Rate > b.Rating.Rate }
	case domain.SortNewest:
		less = newerFirst
	default:
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		return less(&products[i], &products[j])
	})
}

// newerFirst puts timestamped products first, most recent leading
func newerFirst(a, b *domain.Product) bool {
	switch {
	case a.CreatedAt != nil && b.CreatedAt != nil:
		return a.CreatedAt.After(*b.CreatedAt)
	case a.CreatedAt != nil:
		return true
	default:
		return false
	}
}

// paginate slices one page out of products. Pages past the end are empty, not errors.
func paginate(products []domain.Product, page, limit int) []domain.Product {
	// compare page numbers first; (page-1)*limit overflows for huge pages
	if page < 1 || limit < 1 || page-1 >= pageCount(len(products), limit) {
		return []domain.Product{}
	}
	start := (page - 1) * limit
	end := start + limit
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

// pageCount is ceil(total/limit)
func pageCount(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	count := total / limit
	if total%limit != 0 {
		count++
	}
	return count
}

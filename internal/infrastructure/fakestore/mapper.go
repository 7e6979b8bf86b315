package fakestore

import (
	"strconv"

	"github.com/storefront/backend/internal/domain"
)

// MapToProduct converts a feed item into the storefront product shape.
// Feed items are never featured, carry no creation time and report placeholder stock.
func MapToProduct(remote domain.RemoteProduct) domain.Product {
	id := strconv.Itoa(remote.ID)

	return domain.Product{
		ID:          id,
		Key:         id,
		Ref:         domain.NewRef(domain.SourceFrontend, id).String(),
		Title:       remote.Title,
		Description: remote.Description,
		Price:       remote.Price,
		Category:    domain.NormalizeCategory(remote.Category),
		Image:       remote.Image,
		Rating: domain.Rating{
			Rate:  remote.Rating.Rate,
			Count: remote.Rating.Count,
		},
		Source:     domain.SourceFrontend,
		IsFeatured: false,
		Stock:      domain.RemoteStockPlaceholder,
	}
}

// MapCatalog converts a whole feed payload, preserving feed order
func MapCatalog(remote []domain.RemoteProduct) []domain.Product {
	products := make([]domain.Product, 0, len(remote))
	for _, item := range remote {
		products = append(products, MapToProduct(item))
	}
	return products
}

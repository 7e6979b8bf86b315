package postgres

import (
	"time"

	"github.com/storefront/backend/internal/domain"
)

// productRecord is the persisted form of a local product
type productRecord struct {
	ID          string         `gorm:"primaryKey;size:32"`
	LegacyID    string         `gorm:"size:64;index"`
	Title       string         `gorm:"size:255;not null"`
	Description string         `gorm:"type:text"`
	Price       float64        `gorm:"not null;default:0"`
	Category    string         `gorm:"size:64;index"`
	Image       string         `gorm:"size:1024"`
	IsFeatured  bool           `gorm:"not null;default:false"`
	Stock       int            `gorm:"not null;default:0"`
	RatingRate  float64        `gorm:"not null;default:0"`
	RatingCount int            `gorm:"not null;default:0"`
	Reviews     []reviewRecord `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productRecord) TableName() string {
	return "products"
}

// reviewRecord is one review row; (product_id, user_id) is unique
type reviewRecord struct {
	ID        string `gorm:"primaryKey;size:32"`
	ProductID string `gorm:"size:32;not null;uniqueIndex:idx_review_product_user"`
	UserID    string `gorm:"size:64;not null;uniqueIndex:idx_review_product_user"`
	Name      string `gorm:"size:255"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
}

func (reviewRecord) TableName() string {
	return "product_reviews"
}

func (r *productRecord) toDomain() domain.Product {
	created := r.CreatedAt
	updated := r.UpdatedAt

	// id mirrors the key unless the record carries its own legacy id
	id := r.ID
	if r.LegacyID != "" {
		id = r.LegacyID
	}

	product := domain.Product{
		ID:          id,
		Key:         r.ID,
		Ref:         domain.NewRef(domain.SourceDatabase, r.ID).String(),
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Image:       r.Image,
		Rating:      domain.Rating{Rate: r.RatingRate, Count: r.RatingCount},
		Source:      domain.SourceDatabase,
		IsFeatured:  r.IsFeatured,
		Stock:       r.Stock,
		CreatedAt:   &created,
		UpdatedAt:   &updated,
	}
	if len(r.Reviews) > 0 {
		product.Reviews = make([]domain.Review, 0, len(r.Reviews))
		for _, rev := range r.Reviews {
			product.Reviews = append(product.Reviews, domain.Review{
				User:      rev.UserID,
				Name:      rev.Name,
				Rating:    rev.Rating,
				Comment:   rev.Comment,
				CreatedAt: rev.CreatedAt,
			})
		}
	}
	return product
}

func recordFromInput(id string, in domain.ProductInput) productRecord {
	return productRecord{
		ID:          id,
		LegacyID:    in.LegacyID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.Image,
		IsFeatured:  in.IsFeatured,
		Stock:       in.Stock,
	}
}

func (r *productRecord) applyPatch(p domain.ProductPatch) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Price != nil {
		r.Price = *p.Price
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
	if p.IsFeatured != nil {
		r.IsFeatured = *p.IsFeatured
	}
	if p.Stock != nil {
		r.Stock = *p.Stock
	}
}

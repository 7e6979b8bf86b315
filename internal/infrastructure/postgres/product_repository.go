package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/storefront/backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscaper neutralises LIKE wildcards in user-supplied search text
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ProductRepository stores local products and their reviews in postgres
type ProductRepository struct {
	db    *gorm.DB
	newID func() string
}

// NewProductRepository creates a repository keyed by ULIDs
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		db:    db,
		newID: func() string { return ulid.Make().String() },
	}
}

// Find returns products matching the filter, oldest first
func (r *ProductRepository) Find(ctx context.Context, filter domain.LocalFilter) ([]domain.Product, error) {
	var records []productRecord
	err := r.db.WithContext(ctx).
		Model(&productRecord{}).
		Scopes(localFilterScope(filter)).
		Preload("Reviews", orderedReviews).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, storeError("find products", err)
	}

	products := make([]domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// FindByIdentifier matches the primary key or the legacy id field
func (r *ProductRepository) FindByIdentifier(ctx context.Context, id string) (*domain.Product, error) {
	var record productRecord
	err := r.db.WithContext(ctx).
		Scopes(identifierScope(id)).
		Preload("Reviews", orderedReviews).
		First(&record).Error
	if err != nil {
		return nil, storeError("find product", err)
	}

	product := record.toDomain()
	return &product, nil
}

// Create inserts a product under a freshly generated key
func (r *ProductRepository) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	record := recordFromInput(r.newID(), input)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&record).Error; err != nil {
		return nil, storeError("create product", err)
	}

	product := record.toDomain()
	return &product, nil
}

// Update applies a partial update to the product with the given key
func (r *ProductRepository) Update(ctx context.Context, key string, patch domain.ProductPatch) (*domain.Product, error) {
	var record productRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, "id = ?", key).Error; err != nil {
			return err
		}
		record.applyPatch(patch)
		if err := tx.Omit(clause.Associations).Save(&record).Error; err != nil {
			return err
		}
		return tx.Scopes(orderedReviews).Where("product_id = ?", key).Find(&record.Reviews).Error
	})
	if err != nil {
		return nil, storeError("update product", err)
	}

	product := record.toDomain()
	return &product, nil
}

// Delete removes a product and, through the foreign key, its reviews
func (r *ProductRepository) Delete(ctx context.Context, key string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", key).Delete(&reviewRecord{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", key).Delete(&productRecord{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return storeError("delete product", err)
	}
	return nil
}

// AppendReview inserts the review and refreshes the aggregate rating in one transaction
func (r *ProductRepository) AppendReview(ctx context.Context, key string, review domain.Review) (*domain.Product, error) {
	var record productRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, "id = ?", key).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&reviewRecord{}).
			Where("product_id = ? AND user_id = ?", key, review.User).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return domain.ErrAlreadyReviewed
		}

		row := reviewRecord{
			ID:        r.newID(),
			ProductID: key,
			UserID:    review.User,
			Name:      review.Name,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		}
		if err := tx.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyReviewed
			}
			return err
		}

		var agg struct {
			Rate  float64
			Count int
		}
		if err := tx.Model(&reviewRecord{}).
			Select("COALESCE(AVG(rating), 0) AS rate, COUNT(*) AS count").
			Where("product_id = ?", key).
			Scan(&agg).Error; err != nil {
			return err
		}

		if err := tx.Model(&record).Updates(map[string]interface{}{
			"rating_rate":  agg.Rate,
			"rating_count": agg.Count,
		}).Error; err != nil {
			return err
		}
		record.RatingRate = agg.Rate
		record.RatingCount = agg.Count

		return tx.Scopes(orderedReviews).Where("product_id = ?", key).Find(&record.Reviews).Error
	})
	if err != nil {
		return nil, storeError("append review", err)
	}

	product := record.toDomain()
	return &product, nil
}

func localFilterScope(filter domain.LocalFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Category != "" {
			db = db.Where("category = ?", filter.Category)
		}
		if filter.SearchText != "" {
			pattern := "%" + likeEscaper.Replace(filter.SearchText) + "%"
			db = db.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
		}
		return db
	}
}

func identifierScope(id string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ? OR legacy_id = ?", id, id)
	}
}

func orderedReviews(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

// storeError maps gorm failures onto domain errors
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrProductNotFound
	case errors.Is(err, domain.ErrAlreadyReviewed):
		return domain.ErrAlreadyReviewed
	default:
		return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
	}
}

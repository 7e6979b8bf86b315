package domain

import "time"

// Source tags where a product came from
type Source string

const (
	// SourceDatabase marks products persisted in the local store
	SourceDatabase Source = "database"
	// SourceFrontend marks products fetched from the remote feed
	SourceFrontend Source = "frontend"
)

// RemoteStockPlaceholder is the stock reported for remote items; the feed has no inventory
const RemoteStockPlaceholder = 100

// Product is the merged view of a catalog item from either source
type Product struct {
	ID          string     `json:"id"`
	Key         string     `json:"_id"`
	Ref         string     `json:"ref"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Category    string     `json:"category"`
	Image       string     `json:"image"`
	Rating      Rating     `json:"rating"`
	Source      Source     `json:"source"`
	IsFeatured  bool       `json:"isFeatured"`
	Stock       int        `json:"stock"`
	Reviews     []Review   `json:"reviews,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Rating is the aggregate customer rating
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Review is a single customer review, kept in submission order
type Review struct {
	User      string    `json:"user"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewInput is the body of a review submission
type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ProductInput carries the admin-editable fields of a local product
type ProductInput struct {
	LegacyID    string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	IsFeatured  bool    `json:"isFeatured"`
	Stock       int     `json:"stock"`
}

// ProductPatch carries a partial update; nil fields are left untouched
type ProductPatch struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Image       *string  `json:"image,omitempty"`
	IsFeatured  *bool    `json:"isFeatured,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

// RemoteProduct is an item as served by the third-party catalog feed
type RemoteProduct struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Price       float64      `json:"price"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Image       string       `json:"image"`
	Rating      RemoteRating `json:"rating"`
}

// RemoteRating is the rating block of a feed item
type RemoteRating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// User is the authenticated caller as supplied by the auth layer
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// RoleAdmin grants catalog mutation rights
const RoleAdmin = "admin"

// IsAdmin reports whether the user may mutate the local catalog
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

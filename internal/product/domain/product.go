package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product statuses
const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusOutOfStock = "out_of_stock"
)

// Product represents a catalog entry for the shop.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	Category       string             `bson:"category" json:"category"`
	Price          float64            `bson:"price" json:"price"`
	Stock          int                `bson:"stock" json:"stock"`
	SKU            string             `bson:"sku" json:"sku"`
	Images         []string           `bson:"images" json:"images"`
	Status         string             `bson:"status" json:"status"`
	Rating         float64            `bson:"rating" json:"rating"`
	Sales          int                `bson:"sales" json:"sales"`
	Tags           []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Specifications map[string]string  `bson:"specifications,omitempty" json:"specifications,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsAvailable checks if the product can be ordered
func (p *Product) IsAvailable() bool {
	return p.Stock > 0 && p.Status == StatusActive
}

// HasTag reports whether the product's tag set contains the given tag.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Filter narrows a product listing. Zero values mean "no constraint".
type Filter struct {
	Category string
	Status   string
	MinPrice float64
	MaxPrice float64
}

// Page is one page of a cursor-paginated listing, ordered by creation time
// descending. Cursor is opaque and forward-only; an empty NextCursor means
// the listing is exhausted.
type Page struct {
	Products   []Product `json:"products"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// ProductRepository defines the contract for product data access.
// Single-entity lookups return (nil, nil) when the id does not exist;
// absence is a normal result, not an error.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	List(ctx context.Context, filter Filter, pageSize int, cursor string) (*Page, error)
	FindByTag(ctx context.Context, tag string) ([]Product, error)
	FindByCategory(ctx context.Context, category string) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error
	Count(ctx context.Context) (int64, error)
}

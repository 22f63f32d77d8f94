package category

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a catalog grouping. ParentID enables a shallow hierarchy;
// the layer does not validate it acyclic. ProductCount is a denormalized
// counter maintained only by explicit admin refreshes, so it can go stale
// when products are edited.
type Category struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	Slug         string              `bson:"slug" json:"slug"`
	Image        string              `bson:"image,omitempty" json:"image,omitempty"`
	ParentID     *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	IsActive     bool                `bson:"is_active" json:"is_active"`
	SortOrder    int                 `bson:"sort_order" json:"sort_order"`
	ProductCount int                 `bson:"product_count" json:"product_count"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`
}

// Repository defines the contract for category data access. Single
// lookups return (nil, nil) on absence.
type Repository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

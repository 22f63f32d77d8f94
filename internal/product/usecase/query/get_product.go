package query

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/internal/product/domain"
)

// GetProductQuery represents the query to get a single product
type GetProductQuery struct {
	ID string
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle returns the product or (nil, nil) when the id does not exist.
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	id, err := primitive.ObjectIDFromHex(q.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id")
	}
	return h.repo.FindByID(ctx, id)
}

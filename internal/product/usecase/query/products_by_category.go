package query

import (
	"context"
	"fmt"

	"github.com/construmat/backend/internal/product/domain"
)

// ProductsByCategoryQuery lists active products of a category, best
// sellers first.
type ProductsByCategoryQuery struct {
	Category string
}

// ProductsByCategoryHandler handles the by-category query
type ProductsByCategoryHandler struct {
	repo domain.ProductRepository
}

// NewProductsByCategoryHandler creates a new by-category handler
func NewProductsByCategoryHandler(repo domain.ProductRepository) *ProductsByCategoryHandler {
	return &ProductsByCategoryHandler{repo: repo}
}

// Handle executes the by-category query
func (h *ProductsByCategoryHandler) Handle(ctx context.Context, q ProductsByCategoryQuery) ([]domain.Product, error) {
	if q.Category == "" {
		return nil, fmt.Errorf("category is required")
	}

	products, err := h.repo.FindByCategory(ctx, q.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to list category products: %w", err)
	}
	return products, nil
}

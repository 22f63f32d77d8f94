package query

import (
	"context"
	"fmt"

	"github.com/construmat/backend/internal/product/domain"
)

// ListProductsQuery represents the query to list products page by page.
type ListProductsQuery struct {
	PageSize int
	Cursor   string
	Filter   domain.Filter
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (*domain.Page, error) {
	if q.PageSize <= 0 {
		q.PageSize = 20
	}

	page, err := h.repo.List(ctx, q.Filter, q.PageSize, q.Cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return page, nil
}

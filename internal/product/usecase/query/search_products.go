package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/construmat/backend/internal/product/domain"
)

// SearchProductsQuery represents a tag search.
type SearchProductsQuery struct {
	Term string
}

// SearchProductsHandler handles product search query
type SearchProductsHandler struct {
	repo domain.ProductRepository
}

// NewSearchProductsHandler creates a new search products handler
func NewSearchProductsHandler(repo domain.ProductRepository) *SearchProductsHandler {
	return &SearchProductsHandler{repo: repo}
}

// Handle matches products whose tag set contains the lowercased term
// exactly. Products without a literal matching tag are not returned, even
// when the term appears in the name or description.
func (h *SearchProductsHandler) Handle(ctx context.Context, q SearchProductsQuery) ([]domain.Product, error) {
	term := strings.ToLower(strings.TrimSpace(q.Term))
	if term == "" {
		return nil, nil
	}

	products, err := h.repo.FindByTag(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

package query

import (
	"context"
	"fmt"

	"github.com/construmat/backend/internal/order/domain"
)

// ListOrdersQuery represents the query to list orders with filters.
type ListOrdersQuery struct {
	Filter domain.Filter
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query, newest first.
func (h *ListOrdersHandler) Handle(ctx context.Context, q ListOrdersQuery) ([]domain.Order, error) {
	orders, err := h.repo.FindAll(ctx, q.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

package query

import (
	"context"
	"fmt"

	"github.com/construmat/backend/internal/order/domain"
)

// OrdersByUserQuery lists a customer's orders, newest first.
type OrdersByUserQuery struct {
	UserID string
}

// OrdersByUserHandler handles the by-user query
type OrdersByUserHandler struct {
	repo domain.OrderRepository
}

// NewOrdersByUserHandler creates a new by-user handler
func NewOrdersByUserHandler(repo domain.OrderRepository) *OrdersByUserHandler {
	return &OrdersByUserHandler{repo: repo}
}

// Handle executes the by-user query
func (h *OrdersByUserHandler) Handle(ctx context.Context, q OrdersByUserQuery) ([]domain.Order, error) {
	if q.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	orders, err := h.repo.FindByUser(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user orders: %w", err)
	}
	return orders, nil
}

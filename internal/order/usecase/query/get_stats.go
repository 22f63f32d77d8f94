package query

import (
	"context"
	"fmt"

	"github.com/construmat/backend/internal/order/domain"
)

// GetStatsQuery represents the query to get order statistics
type GetStatsQuery struct{}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.OrderRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.OrderRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle tallies counts per status over the whole collection and sums
// revenue over delivered orders with settled payment. This is a full scan;
// fine at the shop's scale.
func (h *GetStatsHandler) Handle(ctx context.Context, _ GetStatsQuery) (*domain.Stats, error) {
	orders, err := h.repo.FindAll(ctx, domain.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	stats := &domain.Stats{Total: int64(len(orders))}
	for _, order := range orders {
		switch order.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusConfirmed:
			stats.Confirmed++
		case domain.StatusProcessing:
			stats.Processing++
		case domain.StatusShipped:
			stats.Shipped++
		case domain.StatusDelivered:
			stats.Delivered++
			if order.PaymentStatus == domain.PaymentPaid {
				stats.TotalRevenue += order.Total
			}
		case domain.StatusCancelled:
			stats.Cancelled++
		}
	}

	return stats, nil
}

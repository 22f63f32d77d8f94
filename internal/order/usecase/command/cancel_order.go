package command

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/internal/order/domain"
	"github.com/construmat/backend/kafka"
	"github.com/construmat/backend/pkg/logger"
)

// CancelOrderCommand represents the command to cancel an order
type CancelOrderCommand struct {
	ID     string
	Reason string
}

// CancelOrderHandler handles order cancellation command
type CancelOrderHandler struct {
	repo      domain.OrderRepository
	publisher EventPublisher
}

// NewCancelOrderHandler creates a new cancel order handler
func NewCancelOrderHandler(repo domain.OrderRepository, publisher EventPublisher) *CancelOrderHandler {
	return &CancelOrderHandler{repo: repo, publisher: publisher}
}

// Handle cancels the order. Only pending and confirmed orders may be
// cancelled; the reason is appended to the notes and stock is restored in
// the same atomic batch. The sales counter stays as-is: it tracks ever
// ordered quantity, not fulfilled quantity.
func (h *CancelOrderHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*domain.Order, error) {
	id, err := primitive.ObjectIDFromHex(cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id")
	}

	order, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order not found")
	}

	if !order.CanCancel() {
		return nil, &domain.PreconditionError{
			Msg: fmt.Sprintf("order in status %s cannot be cancelled", order.Status),
		}
	}

	order.Status = domain.StatusCancelled
	if cmd.Reason != "" {
		if order.Notes != "" {
			order.Notes += "\n"
		}
		order.Notes += "Cancelled: " + cmd.Reason
	}
	order.UpdatedAt = time.Now()

	if err := h.repo.CancelWithRestock(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	if h.publisher != nil {
		event := kafka.OrderCancelledEvent{
			OrderID:     order.ID.Hex(),
			OrderNumber: order.OrderNumber,
			UserID:      order.UserID,
			Reason:      cmd.Reason,
		}
		if err := h.publisher.PublishOrderCancelled(ctx, event); err != nil {
			logger.Warn(ctx).Err(err).Str("order_number", order.OrderNumber).Msg("Failed to publish order cancelled event")
		}
	}

	return order, nil
}

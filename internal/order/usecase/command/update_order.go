package command

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/internal/order/domain"
)

// UpdateOrderCommand carries a partial update; nil fields are untouched.
type UpdateOrderCommand struct {
	ID             string
	Status         *string
	PaymentStatus  *string
	TrackingNumber *string
	Notes          *string
}

// UpdateOrderHandler handles order update command
type UpdateOrderHandler struct {
	repo domain.OrderRepository
}

// NewUpdateOrderHandler creates a new update order handler
func NewUpdateOrderHandler(repo domain.OrderRepository) *UpdateOrderHandler {
	return &UpdateOrderHandler{repo: repo}
}

// Handle applies the update. Status changes are validated against the
// transition table; completedAt is set exactly when the order moves to
// delivered.
func (h *UpdateOrderHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*domain.Order, error) {
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

	if cmd.Status != nil && *cmd.Status != order.Status {
		if !domain.CanTransition(order.Status, *cmd.Status) {
			return nil, &domain.PreconditionError{
				Msg: fmt.Sprintf("cannot move order from %s to %s", order.Status, *cmd.Status),
			}
		}
		order.Status = *cmd.Status
		if order.Status == domain.StatusDelivered {
			now := time.Now()
			order.CompletedAt = &now
		}
	}
	if cmd.PaymentStatus != nil {
		switch *cmd.PaymentStatus {
		case domain.PaymentPending, domain.PaymentPaid, domain.PaymentFailed, domain.PaymentRefunded:
			order.PaymentStatus = *cmd.PaymentStatus
		default:
			return nil, fmt.Errorf("invalid payment status: %s", *cmd.PaymentStatus)
		}
	}
	if cmd.TrackingNumber != nil {
		order.TrackingNumber = *cmd.TrackingNumber
	}
	if cmd.Notes != nil {
		order.Notes = *cmd.Notes
	}

	order.UpdatedAt = time.Now()

	if err := h.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return order, nil
}

package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/internal/order/domain"
	productdomain "github.com/construmat/backend/internal/product/domain"
	"github.com/construmat/backend/kafka"
	"github.com/construmat/backend/pkg/logger"
)

// EventPublisher publishes order events. Publishing is best-effort: one
// attempt, failures are logged and never fail the operation.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event kafka.OrderCreatedEvent) error
	PublishOrderCancelled(ctx context.Context, event kafka.OrderCancelledEvent) error
}

// CreateOrderItem is one requested line of a new order.
type CreateOrderItem struct {
	ProductID string
	Quantity  int
}

// CreateOrderCommand represents the command to place a new order
type CreateOrderCommand struct {
	UserID          string
	Items           []CreateOrderItem
	PaymentMethod   string
	ShippingAddress domain.ShippingAddress
	Notes           string
}

// CreateOrderHandler handles order creation command
type CreateOrderHandler struct {
	orders    domain.OrderRepository
	products  productdomain.ProductRepository
	publisher EventPublisher
}

// NewCreateOrderHandler creates a new create order handler. The publisher
// may be nil when Kafka is not configured.
func NewCreateOrderHandler(orders domain.OrderRepository, products productdomain.ProductRepository, publisher EventPublisher) *CreateOrderHandler {
	return &CreateOrderHandler{orders: orders, products: products, publisher: publisher}
}

// Handle places the order: product name/price/image are snapshotted into
// the items, totals are computed, and the order write plus the per-item
// stock/sales adjustments commit as one atomic unit.
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if cmd.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if len(cmd.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}
	switch cmd.PaymentMethod {
	case domain.MethodCard, domain.MethodPaypal, domain.MethodCashOnDelivery:
	default:
		return nil, fmt.Errorf("unsupported payment method: %s", cmd.PaymentMethod)
	}

	var items []domain.OrderItem
	var subtotal float64
	for _, reqItem := range cmd.Items {
		if reqItem.Quantity <= 0 {
			return nil, fmt.Errorf("item quantity must be positive")
		}

		id, err := primitive.ObjectIDFromHex(reqItem.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product id: %s", reqItem.ProductID)
		}

		product, err := h.products.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load product: %w", err)
		}
		if product == nil {
			return nil, fmt.Errorf("product not found: %s", reqItem.ProductID)
		}
		if !product.IsAvailable() || product.Stock < reqItem.Quantity {
			return nil, &domain.PreconditionError{
				Msg: fmt.Sprintf("insufficient stock for %s", product.Name),
			}
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}

		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    reqItem.Quantity,
			Image:       image,
		})
		subtotal += product.Price * float64(reqItem.Quantity)
	}

	tax := subtotal * domain.TaxRate
	shipping := domain.ShippingFor(subtotal)

	now := time.Now()
	order := &domain.Order{
		OrderNumber:     generateOrderNumber(now),
		UserID:          cmd.UserID,
		Items:           items,
		Subtotal:        subtotal,
		Tax:             tax,
		Shipping:        shipping,
		Total:           subtotal + tax + shipping,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		PaymentMethod:   cmd.PaymentMethod,
		ShippingAddress: cmd.ShippingAddress,
		Notes:           cmd.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := h.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if h.publisher != nil {
		event := kafka.OrderCreatedEvent{
			OrderID:     order.ID.Hex(),
			OrderNumber: order.OrderNumber,
			UserID:      order.UserID,
			ItemCount:   len(order.Items),
			Total:       order.Total,
		}
		if err := h.publisher.PublishOrderCreated(ctx, event); err != nil {
			logger.Warn(ctx).Err(err).Str("order_number", order.OrderNumber).Msg("Failed to publish order created event")
		}
	}

	return order, nil
}

// generateOrderNumber builds a human-displayable order number. It is not
// the primary key.
func generateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("CM-%s-%s", now.Format("20060102"), suffix)
}

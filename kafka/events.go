package kafka

import "time"

// OrderCreatedEvent is emitted after an order and its stock adjustments
// commit.
type OrderCreatedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	ItemCount   int       `json:"item_count"`
	Total       float64   `json:"total"`
	Timestamp   time.Time `json:"timestamp"`
}

// OrderCancelledEvent is emitted after a cancellation restores stock.
type OrderCancelledEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	Reason      string    `json:"reason,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderCreated   = "order.created"
	EventTypeOrderCancelled = "order.cancelled"
)

// Kafka topics
const (
	TopicOrders = "orders"
)

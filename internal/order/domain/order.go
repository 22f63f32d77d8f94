package domain

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Payment statuses
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment methods
const (
	MethodCard           = "card"
	MethodPaypal         = "paypal"
	MethodCashOnDelivery = "cash_on_delivery"
)

// Pricing rules applied at order creation and in the cart.
const (
	TaxRate               = 0.19
	FreeShippingThreshold = 200.0
	FlatShippingFee       = 20.0
)

// ShippingFor returns the shipping fee for a given subtotal.
func ShippingFor(subtotal float64) float64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// transitions is the allowed forward path of an order. Delivered and
// cancelled are terminal; cancellation is reachable only early.
var transitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PreconditionError signals a state change rejected by business rules, as
// opposed to a storage failure. The message is safe to show to the user.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string {
	return e.Msg
}

// IsPrecondition reports whether err is a rejected-precondition error.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// OrderItem is a line item with product fields snapshotted at creation
// time. Snapshots are never re-synchronized with the live product.
type OrderItem struct {
	ProductID   primitive.ObjectID `bson:"product_id" json:"product_id"`
	ProductName string             `bson:"product_name" json:"product_name"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
}

// ShippingAddress holds the structured postal fields of an order.
type ShippingAddress struct {
	Name       string `bson:"name" json:"name"`
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	County     string `bson:"county,omitempty" json:"county,omitempty"`
	PostalCode string `bson:"postal_code" json:"postal_code"`
	Country    string `bson:"country" json:"country"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Order represents a customer order.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber     string             `bson:"order_number" json:"order_number"`
	UserID          string             `bson:"user_id" json:"user_id"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Tax             float64            `bson:"tax" json:"tax"`
	Shipping        float64            `bson:"shipping" json:"shipping"`
	Total           float64            `bson:"total" json:"total"`
	Status          string             `bson:"status" json:"status"`
	PaymentStatus   string             `bson:"payment_status" json:"payment_status"`
	PaymentMethod   string             `bson:"payment_method" json:"payment_method"`
	ShippingAddress ShippingAddress    `bson:"shipping_address" json:"shipping_address"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	TrackingNumber  string             `bson:"tracking_number,omitempty" json:"tracking_number,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
	CompletedAt     *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// CanCancel reports whether the order is still early enough to cancel.
func (o *Order) CanCancel() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

// Filter narrows an order listing. Zero values mean "no constraint".
type Filter struct {
	Status        string
	PaymentStatus string
	UserID        string
	From          time.Time
	To            time.Time
}

// Stats is the back-office order summary. TotalRevenue sums the total of
// delivered orders whose payment is settled.
type Stats struct {
	Total        int64   `json:"total"`
	Pending      int64   `json:"pending"`
	Confirmed    int64   `json:"confirmed"`
	Processing   int64   `json:"processing"`
	Shipped      int64   `json:"shipped"`
	Delivered    int64   `json:"delivered"`
	Cancelled    int64   `json:"cancelled"`
	TotalRevenue float64 `json:"total_revenue"`
}

// OrderRepository defines the contract for order data access. Create and
// CancelWithRestock also adjust the referenced products' stock/sales
// counters in the same atomic batch as the order write.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Order, error)
	FindAll(ctx context.Context, filter Filter) ([]Order, error)
	FindByUser(ctx context.Context, userID string) ([]Order, error)
	Update(ctx context.Context, order *Order) error
	CancelWithRestock(ctx context.Context, order *Order) error
}

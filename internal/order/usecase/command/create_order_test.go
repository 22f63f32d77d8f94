package command

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/construmat/backend/internal/order/domain"
	productdomain "github.com/construmat/backend/internal/product/domain"
)

func TestCreateOrderComputesTotals(t *testing.T) {
	orders := newFakeOrderRepo()
	products := newFakeProductRepo()
	publisher := &fakePublisher{}

	cement := products.add(productdomain.Product{
		Name:   "Portland Cement 40kg",
		Price:  50,
		Stock:  10,
		Status: productdomain.StatusActive,
		Images: []string{"http://cdn.local/products/cement.jpg"},
	})

	handler := NewCreateOrderHandler(orders, products, publisher)

	order, err := handler.Handle(context.Background(), CreateOrderCommand{
		UserID:        "user-1",
		PaymentMethod: domain.MethodCard,
		Items: []CreateOrderItem{
			{ProductID: cement.ID.Hex(), Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 150.0, order.Subtotal)
	assert.InDelta(t, 28.5, order.Tax, 1e-9)
	assert.Equal(t, 20.0, order.Shipping)
	assert.InDelta(t, 198.5, order.Total, 1e-9)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "CM-"))
	assert.Nil(t, order.CompletedAt)

	// Item fields are snapshots of the product at order time
	require.Len(t, order.Items, 1)
	assert.Equal(t, cement.ID, order.Items[0].ProductID)
	assert.Equal(t, "Portland Cement 40kg", order.Items[0].ProductName)
	assert.Equal(t, 50.0, order.Items[0].Price)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.Equal(t, "http://cdn.local/products/cement.jpg", order.Items[0].Image)

	require.Len(t, publisher.created, 1)
	assert.Equal(t, order.OrderNumber, publisher.created[0].OrderNumber)
}

func TestCreateOrderFreeShippingOverThreshold(t *testing.T) {
	orders := newFakeOrderRepo()
	products := newFakeProductRepo()

	bricks := products.add(productdomain.Product{
		Name:   "Clay Bricks (pallet)",
		Price:  120,
		Stock:  5,
		Status: productdomain.StatusActive,
	})

	handler := NewCreateOrderHandler(orders, products, nil)

	order, err := handler.Handle(context.Background(), CreateOrderCommand{
		UserID:        "user-1",
		PaymentMethod: domain.MethodPaypal,
		Items: []CreateOrderItem{
			{ProductID: bricks.ID.Hex(), Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 240.0, order.Subtotal)
	assert.Equal(t, 0.0, order.Shipping)
	assert.InDelta(t, 240+240*0.19, order.Total, 1e-9)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	orders := newFakeOrderRepo()
	products := newFakeProductRepo()

	sand := products.add(productdomain.Product{
		Name:   "Sand 25kg",
		Price:  8,
		Stock:  2,
		Status: productdomain.StatusActive,
	})

	handler := NewCreateOrderHandler(orders, products, nil)

	_, err := handler.Handle(context.Background(), CreateOrderCommand{
		UserID:        "user-1",
		PaymentMethod: domain.MethodCard,
		Items: []CreateOrderItem{
			{ProductID: sand.ID.Hex(), Quantity: 3},
		},
	})
	require.Error(t, err)
	assert.True(t, domain.IsPrecondition(err))
	assert.Equal(t, 0, orders.createCalls)
}

func TestCreateOrderInactiveProductRejected(t *testing.T) {
	orders := newFakeOrderRepo()
	products := newFakeProductRepo()

	discontinued := products.add(productdomain.Product{
		Name:   "Old Tile",
		Price:  10,
		Stock:  50,
		Status: productdomain.StatusInactive,
	})

	handler := NewCreateOrderHandler(orders, products, nil)

	_, err := handler.Handle(context.Background(), CreateOrderCommand{
		UserID:        "user-1",
		PaymentMethod: domain.MethodCard,
		Items: []CreateOrderItem{
			{ProductID: discontinued.ID.Hex(), Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.True(t, domain.IsPrecondition(err))
}

func TestCreateOrderValidation(t *testing.T) {
	orders := newFakeOrderRepo()
	products := newFakeProductRepo()
	handler := NewCreateOrderHandler(orders, products, nil)

	p := products.add(productdomain.Product{Name: "Gravel", Price: 5, Stock: 10, Status: productdomain.StatusActive})

	_, err := handler.Handle(context.Background(), CreateOrderCommand{
		PaymentMethod: domain.MethodCard,
		Items:         []CreateOrderItem{{ProductID: p.ID.Hex(), Quantity: 1}},
	})
	assert.EqualError(t, err, "user id is required")

	_, err = handler.Handle(context.Background(), CreateOrderCommand{
		UserID:        "user-1",
		PaymentMethod: domain.MethodCard,
	})
	assert.EqualError(t, err, "order must contain at least one item")

	_, err = handler.Handle(context.Background(), CreateOrderCommand{
		UserID:        "user-1",
		PaymentMethod: "bitcoin",
		Items:         []CreateOrderItem{{ProductID: p.ID.Hex(), Quantity: 1}},
	})
	assert.ErrorContains(t, err, "unsupported payment method")

	_, err = handler.Handle(context.Background(), CreateOrderCommand{
		UserID:        "user-1",
		PaymentMethod: domain.MethodCard,
		Items:         []CreateOrderItem{{ProductID: p.ID.Hex(), Quantity: 0}},
	})
	assert.EqualError(t, err, "item quantity must be positive")
}

func TestCreateOrderPublishFailureDoesNotFailOrder(t *testing.T) {
	orders := newFakeOrderRepo()
	products := newFakeProductRepo()
	publisher := &fakePublisher{fail: true}

	p := products.add(productdomain.Product{Name: "Plaster", Price: 15, Stock: 10, Status: productdomain.StatusActive})

	handler := NewCreateOrderHandler(orders, products, publisher)

	order, err := handler.Handle(context.Background(), CreateOrderCommand{
		UserID:        "user-1",
		PaymentMethod: domain.MethodCashOnDelivery,
		Items:         []CreateOrderItem{{ProductID: p.ID.Hex(), Quantity: 1}},
	})
	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, 1, orders.createCalls)
}

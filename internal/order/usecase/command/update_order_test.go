package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/construmat/backend/internal/order/domain"
)

func strPtr(s string) *string { return &s }

func TestUpdateOrderLegalTransition(t *testing.T) {
	orders := newFakeOrderRepo()
	existing := orders.add(&domain.Order{Status: domain.StatusPending})

	handler := NewUpdateOrderHandler(orders)

	updated, err := handler.Handle(context.Background(), UpdateOrderCommand{
		ID:     existing.ID.Hex(),
		Status: strPtr(domain.StatusConfirmed),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
	assert.Nil(t, updated.CompletedAt)
	assert.Equal(t, 1, orders.updateCalls)
}

func TestUpdateOrderCompletedAtOnlyOnDelivered(t *testing.T) {
	orders := newFakeOrderRepo()
	shipped := orders.add(&domain.Order{Status: domain.StatusShipped})

	handler := NewUpdateOrderHandler(orders)

	updated, err := handler.Handle(context.Background(), UpdateOrderCommand{
		ID:     shipped.ID.Hex(),
		Status: strPtr(domain.StatusDelivered),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)
	require.NotNil(t, updated.CompletedAt)

	// A later non-status update must not touch completedAt
	completedAt := *updated.CompletedAt
	again, err := handler.Handle(context.Background(), UpdateOrderCommand{
		ID:    shipped.ID.Hex(),
		Notes: strPtr("left at reception"),
	})
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.Equal(t, completedAt, *again.CompletedAt)
}

func TestUpdateOrderIllegalTransitionRejected(t *testing.T) {
	orders := newFakeOrderRepo()
	pending := orders.add(&domain.Order{Status: domain.StatusPending})

	handler := NewUpdateOrderHandler(orders)

	_, err := handler.Handle(context.Background(), UpdateOrderCommand{
		ID:     pending.ID.Hex(),
		Status: strPtr(domain.StatusDelivered),
	})
	require.Error(t, err)
	assert.True(t, domain.IsPrecondition(err))
	assert.Equal(t, 0, orders.updateCalls)

	// Backward moves out of a terminal state are rejected too
	delivered := orders.add(&domain.Order{Status: domain.StatusDelivered})
	_, err = handler.Handle(context.Background(), UpdateOrderCommand{
		ID:     delivered.ID.Hex(),
		Status: strPtr(domain.StatusShipped),
	})
	require.Error(t, err)
	assert.True(t, domain.IsPrecondition(err))
}

func TestUpdateOrderPaymentStatusValidation(t *testing.T) {
	orders := newFakeOrderRepo()
	existing := orders.add(&domain.Order{Status: domain.StatusPending, PaymentStatus: domain.PaymentPending})

	handler := NewUpdateOrderHandler(orders)

	updated, err := handler.Handle(context.Background(), UpdateOrderCommand{
		ID:            existing.ID.Hex(),
		PaymentStatus: strPtr(domain.PaymentPaid),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, updated.PaymentStatus)

	_, err = handler.Handle(context.Background(), UpdateOrderCommand{
		ID:            existing.ID.Hex(),
		PaymentStatus: strPtr("gift-card"),
	})
	assert.ErrorContains(t, err, "invalid payment status")
}

func TestUpdateOrderNotFound(t *testing.T) {
	orders := newFakeOrderRepo()
	handler := NewUpdateOrderHandler(orders)

	_, err := handler.Handle(context.Background(), UpdateOrderCommand{
		ID:     "000000000000000000000000",
		Status: strPtr(domain.StatusConfirmed),
	})
	assert.EqualError(t, err, "order not found")
}

package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/internal/order/domain"
)

type fakeOrderRepo struct {
	orders []domain.Order
}

func (r *fakeOrderRepo) Create(_ context.Context, _ *domain.Order) error { return nil }

func (r *fakeOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			copied := r.orders[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context, _ domain.Filter) ([]domain.Order, error) {
	return append([]domain.Order(nil), r.orders...), nil
}

func (r *fakeOrderRepo) FindByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, _ *domain.Order) error            { return nil }
func (r *fakeOrderRepo) CancelWithRestock(_ context.Context, _ *domain.Order) error { return nil }

func TestGetStats(t *testing.T) {
	repo := &fakeOrderRepo{orders: []domain.Order{
		{Status: domain.StatusDelivered, PaymentStatus: domain.PaymentPaid, Total: 100},
		{Status: domain.StatusDelivered, PaymentStatus: domain.PaymentPaid, Total: 200},
		{Status: domain.StatusCancelled, PaymentStatus: domain.PaymentRefunded, Total: 50},
		{Status: domain.StatusPending, PaymentStatus: domain.PaymentPending, Total: 75},
		{Status: domain.StatusPending, PaymentStatus: domain.PaymentPending, Total: 125},
	}}

	handler := NewGetStatsHandler(repo)

	stats, err := handler.Handle(context.Background(), GetStatsQuery{})
	require.NoError(t, err)

	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, int64(2), stats.Delivered)
	assert.Equal(t, int64(1), stats.Cancelled)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, 300.0, stats.TotalRevenue)
}

func TestGetStatsUnpaidDeliveredExcludedFromRevenue(t *testing.T) {
	repo := &fakeOrderRepo{orders: []domain.Order{
		{Status: domain.StatusDelivered, PaymentStatus: domain.PaymentPaid, Total: 80},
		{Status: domain.StatusDelivered, PaymentStatus: domain.PaymentPending, Total: 500},
		{Status: domain.StatusShipped, PaymentStatus: domain.PaymentPaid, Total: 60},
	}}

	handler := NewGetStatsHandler(repo)

	stats, err := handler.Handle(context.Background(), GetStatsQuery{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Delivered)
	assert.Equal(t, int64(1), stats.Shipped)
	assert.Equal(t, 80.0, stats.TotalRevenue)
}

func TestGetOrderAbsenceIsNotAnError(t *testing.T) {
	handler := NewGetOrderHandler(&fakeOrderRepo{})

	order, err := handler.Handle(context.Background(), GetOrderQuery{ID: primitive.NewObjectID().Hex()})
	require.NoError(t, err)
	assert.Nil(t, order)
}

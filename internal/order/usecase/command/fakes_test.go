package command

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/internal/order/domain"
	productdomain "github.com/construmat/backend/internal/product/domain"
	"github.com/construmat/backend/kafka"
)

type fakeOrderRepo struct {
	orders map[primitive.ObjectID]*domain.Order

	createCalls  int
	updateCalls  int
	cancelCalls  int
	failCreate   error
	lastCreated  *domain.Order
	lastCancel   *domain.Order
	lastUpdated  *domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[primitive.ObjectID]*domain.Order{}}
}

func (r *fakeOrderRepo) add(order *domain.Order) *domain.Order {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	copied := *order
	r.orders[order.ID] = &copied
	return order
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.createCalls++
	if r.failCreate != nil {
		return r.failCreate
	}
	order.ID = primitive.NewObjectID()
	r.lastCreated = order
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context, _ domain.Filter) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *domain.Order) error {
	r.updateCalls++
	r.lastUpdated = order
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) CancelWithRestock(_ context.Context, order *domain.Order) error {
	r.cancelCalls++
	r.lastCancel = order
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

type fakeProductRepo struct {
	products map[primitive.ObjectID]*productdomain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[primitive.ObjectID]*productdomain.Product{}}
}

func (r *fakeProductRepo) add(p productdomain.Product) productdomain.Product {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	copied := p
	r.products[p.ID] = &copied
	return p
}

func (r *fakeProductRepo) Create(_ context.Context, p *productdomain.Product) error {
	r.add(*p)
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*productdomain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProductRepo) List(_ context.Context, _ productdomain.Filter, _ int, _ string) (*productdomain.Page, error) {
	return &productdomain.Page{}, nil
}

func (r *fakeProductRepo) FindByTag(_ context.Context, _ string) ([]productdomain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) FindByCategory(_ context.Context, _ string) ([]productdomain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *productdomain.Product) error {
	copied := *p
	r.products[p.ID] = &copied
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, id primitive.ObjectID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product not found")
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

type fakePublisher struct {
	created   []kafka.OrderCreatedEvent
	cancelled []kafka.OrderCancelledEvent
	fail      bool
}

func (p *fakePublisher) PublishOrderCreated(_ context.Context, event kafka.OrderCreatedEvent) error {
	if p.fail {
		return fmt.Errorf("broker unavailable")
	}
	p.created = append(p.created, event)
	return nil
}

func (p *fakePublisher) PublishOrderCancelled(_ context.Context, event kafka.OrderCancelledEvent) error {
	if p.fail {
		return fmt.Errorf("broker unavailable")
	}
	p.cancelled = append(p.cancelled, event)
	return nil
}

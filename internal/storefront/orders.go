package storefront

import (
	"context"

	orderdomain "github.com/construmat/backend/internal/order/domain"
	ordercommand "github.com/construmat/backend/internal/order/usecase/command"
	orderquery "github.com/construmat/backend/internal/order/usecase/query"
)

// LoadOrders starts an asynchronous load of the signed-in user's order
// history. A no-op with an error message when nobody is signed in.
func (s *Store) LoadOrders(ctx context.Context) {
	s.mu.Lock()
	if s.auth.User == nil {
		s.orders.Error = "not signed in"
		s.notifyLocked()
		s.mu.Unlock()
		return
	}
	userID := s.auth.User.UID
	s.orders.Loading = true
	s.orders.Error = ""
	s.notifyLocked()
	s.mu.Unlock()

	go func() {
		orders, err := s.services.MyOrders.Handle(ctx, orderquery.OrdersByUserQuery{UserID: userID})

		s.mu.Lock()
		defer s.mu.Unlock()

		s.orders.Loading = false
		if err != nil {
			s.orders.Error = err.Error()
		} else {
			s.orders.Items = orders
		}
		s.notifyLocked()
	}()
}

// PlaceOrder starts an asynchronous checkout of the current cart. On
// success the cart is cleared and the new order is prepended to the
// history; on failure the cart is untouched and the message lands in the
// orders slice.
func (s *Store) PlaceOrder(ctx context.Context, paymentMethod string, address orderdomain.ShippingAddress, notes string) {
	s.mu.Lock()
	if s.auth.User == nil {
		s.orders.Error = "not signed in"
		s.notifyLocked()
		s.mu.Unlock()
		return
	}
	if len(s.cart.Items) == 0 {
		s.orders.Error = "cart is empty"
		s.notifyLocked()
		s.mu.Unlock()
		return
	}

	cmd := ordercommand.CreateOrderCommand{
		UserID:          s.auth.User.UID,
		PaymentMethod:   paymentMethod,
		ShippingAddress: address,
		Notes:           notes,
	}
	for _, item := range s.cart.Items {
		cmd.Items = append(cmd.Items, ordercommand.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	s.orders.Loading = true
	s.orders.Error = ""
	s.notifyLocked()
	s.mu.Unlock()

	go func() {
		order, err := s.services.PlaceOrder.Handle(ctx, cmd)

		s.mu.Lock()
		defer s.mu.Unlock()

		s.orders.Loading = false
		if err != nil {
			s.orders.Error = err.Error()
		} else {
			s.orders.Items = append([]orderdomain.Order{*order}, s.orders.Items...)
			s.clearCartLocked()
		}
		s.notifyLocked()
	}()
}

// CancelOrder starts an asynchronous cancellation. On success the
// returned order replaces its entry in the history; a rejected
// precondition surfaces as the slice error message like any other
// failure.
func (s *Store) CancelOrder(ctx context.Context, orderID, reason string) {
	s.mu.Lock()
	s.orders.Loading = true
	s.orders.Error = ""
	s.notifyLocked()
	s.mu.Unlock()

	go func() {
		cancelled, err := s.services.CancelOrder.Handle(ctx, ordercommand.CancelOrderCommand{
			ID:     orderID,
			Reason: reason,
		})

		s.mu.Lock()
		defer s.mu.Unlock()

		s.orders.Loading = false
		if err != nil {
			s.orders.Error = err.Error()
		} else {
			for i := range s.orders.Items {
				if s.orders.Items[i].ID == cancelled.ID {
					s.orders.Items[i] = *cancelled
					break
				}
			}
		}
		s.notifyLocked()
	}()
}

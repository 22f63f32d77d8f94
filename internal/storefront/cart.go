package storefront

// Cart mutations are synchronous and local to the session. Totals are
// recomputed inside the same critical section as the mutation, so a
// Snapshot never observes a cart whose totals lag its items.

const (
	taxRate               = 0.19
	freeShippingThreshold = 200.0
	flatShippingFee       = 20.0
)

// AddItem puts an item in the cart. Lines are unique by product id: an
// existing line has the quantity added, the stored snapshot fields stay
// as they were on first add.
func (s *Store) AddItem(item CartItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.cart.Items {
		if s.cart.Items[i].ProductID == item.ProductID {
			s.cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.cart.Items = append(s.cart.Items, item)
	}

	s.recalcTotalsLocked()
	s.notifyLocked()
}

// UpdateQuantity sets the quantity on a cart line. Quantity zero or
// below removes the line. Unknown product ids are a no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart.Items {
		if s.cart.Items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
		} else {
			s.cart.Items[i].Quantity = quantity
		}
		s.recalcTotalsLocked()
		s.notifyLocked()
		return
	}
}

// RemoveItem drops a cart line by product id.
func (s *Store) RemoveItem(productID string) {
	s.UpdateQuantity(productID, 0)
}

// ClearCart empties the cart and zeroes the totals.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearCartLocked()
	s.notifyLocked()
}

func (s *Store) clearCartLocked() {
	s.cart.Items = nil
	s.recalcTotalsLocked()
}

// recalcTotalsLocked rebuilds the derived totals from the cart lines.
// total == subtotal + tax + shipping always holds after this returns.
func (s *Store) recalcTotalsLocked() {
	subtotal := 0.0
	for _, item := range s.cart.Items {
		subtotal += item.Price * float64(item.Quantity)
	}

	s.cart.Subtotal = subtotal
	s.cart.Tax = subtotal * taxRate

	if subtotal > freeShippingThreshold {
		s.cart.Shipping = 0
	} else {
		s.cart.Shipping = flatShippingFee
	}

	s.cart.Total = s.cart.Subtotal + s.cart.Tax + s.cart.Shipping
}

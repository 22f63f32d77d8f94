package storefront

import (
	"sync"

	orderdomain "github.com/construmat/backend/internal/order/domain"
	productdomain "github.com/construmat/backend/internal/product/domain"
)

// SessionUser is the canonical authenticated identity held by the store.
// It is the single shape exposed to the presentation layer regardless of
// which service produced it.
type SessionUser struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// CartItem is one cart line. Name, price and image are snapshots taken
// when the item was added and are never re-synced with the catalog.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// AuthSlice holds the signed-in user and the session token.
type AuthSlice struct {
	User    *SessionUser `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
}

// CartSlice holds the cart lines and the derived totals. Totals are
// recomputed with every mutation and are never stale.
type CartSlice struct {
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Tax      float64    `json:"tax"`
	Shipping float64    `json:"shipping"`
	Total    float64    `json:"total"`
}

// ProductsSlice caches the most recently loaded catalog page along with
// the filter and cursor that produced it.
type ProductsSlice struct {
	Items      []productdomain.Product `json:"items"`
	Filter     productdomain.Filter    `json:"filter"`
	NextCursor string                  `json:"next_cursor,omitempty"`
	Loading    bool                    `json:"loading"`
	Error      string                  `json:"error,omitempty"`
}

// OrdersSlice caches the session user's order history.
type OrdersSlice struct {
	Items   []orderdomain.Order `json:"items"`
	Loading bool                `json:"loading"`
	Error   string              `json:"error,omitempty"`
}

// Snapshot is a point-in-time copy of all four slices, composed only at
// read time. Slices never reference each other.
type Snapshot struct {
	Auth     AuthSlice     `json:"auth"`
	Cart     CartSlice     `json:"cart"`
	Products ProductsSlice `json:"products"`
	Orders   OrdersSlice   `json:"orders"`
}

// SessionListener is invoked after every auth change with the new user,
// or nil on sign-out.
type SessionListener func(user *SessionUser)

// Store holds the client-session state behind a single mutex. One Store
// per session; construct it with NewStore and pass the handle around,
// there is no package-level instance.
type Store struct {
	mu sync.Mutex

	auth     AuthSlice
	cart     CartSlice
	products ProductsSlice
	orders   OrdersSlice

	services Services

	subscribers      map[int]chan struct{}
	nextSubscriber   int
	sessionListeners []SessionListener
}

// NewStore creates an empty store bound to the given entity services.
func NewStore(services Services) *Store {
	return &Store{
		services:    services,
		subscribers: map[int]chan struct{}{},
	}
}

// Snapshot returns a copy of the current state. The slices inside are
// copies, mutating them does not affect the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Auth:     s.auth,
		Cart:     s.cart,
		Products: s.products,
		Orders:   s.orders,
	}
	snap.Cart.Items = append([]CartItem(nil), s.cart.Items...)
	snap.Products.Items = append([]productdomain.Product(nil), s.products.Items...)
	snap.Orders.Items = append([]orderdomain.Order(nil), s.orders.Items...)
	return snap
}

// Subscribe registers a change notification channel. Sends are
// non-blocking: a slow subscriber misses intermediate states but always
// observes the latest one on its next receive.
func (s *Store) Subscribe() (id int, ch <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := make(chan struct{}, 1)
	id = s.nextSubscriber
	s.nextSubscriber++
	s.subscribers[id] = c
	return id, c
}

// Unsubscribe removes a subscriber. The channel is closed.
func (s *Store) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.subscribers[id]; ok {
		delete(s.subscribers, id)
		close(c)
	}
}

// OnSessionChange registers a listener called after sign-in and
// sign-out. Listeners run outside the store lock.
func (s *Store) OnSessionChange(fn SessionListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionListeners = append(s.sessionListeners, fn)
}

// notifyLocked signals all subscribers. Callers hold s.mu.
func (s *Store) notifyLocked() {
	for _, c := range s.subscribers {
		select {
		case c <- struct{}{}:
		default:
		}
	}
}

// fireSessionChange invokes session listeners with a copy of the user.
// Called without the lock held.
func (s *Store) fireSessionChange(user *SessionUser) {
	s.mu.Lock()
	listeners := append([]SessionListener(nil), s.sessionListeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(user)
	}
}

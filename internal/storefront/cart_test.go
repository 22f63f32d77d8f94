package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotalsIdentity(t *testing.T) {
	store := NewStore(testServices())

	store.AddItem(CartItem{ProductID: "p1", Name: "Ciment", Price: 32.5, Quantity: 3})
	store.AddItem(CartItem{ProductID: "p2", Name: "Nisip", Price: 15, Quantity: 2})

	cart := store.Snapshot().Cart
	assert.InDelta(t, 127.5, cart.Subtotal, 1e-9)
	assert.InDelta(t, 127.5*0.19, cart.Tax, 1e-9)
	assert.Equal(t, 20.0, cart.Shipping)
	assert.InDelta(t, cart.Subtotal+cart.Tax+cart.Shipping, cart.Total, 1e-9)
}

func TestCartFreeShippingOverThreshold(t *testing.T) {
	store := NewStore(testServices())

	store.AddItem(CartItem{ProductID: "p1", Price: 100, Quantity: 2})
	cart := store.Snapshot().Cart
	// Exactly at the threshold shipping is still charged.
	assert.Equal(t, 20.0, cart.Shipping)

	store.AddItem(CartItem{ProductID: "p2", Price: 0.5, Quantity: 1})
	cart = store.Snapshot().Cart
	assert.Equal(t, 0.0, cart.Shipping)
	assert.InDelta(t, cart.Subtotal+cart.Tax, cart.Total, 1e-9)
}

func TestCartEmptyStillHasTotalsIdentity(t *testing.T) {
	store := NewStore(testServices())

	store.AddItem(CartItem{ProductID: "p1", Price: 10, Quantity: 1})
	store.ClearCart()

	cart := store.Snapshot().Cart
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Subtotal)
	assert.InDelta(t, cart.Subtotal+cart.Tax+cart.Shipping, cart.Total, 1e-9)
}

func TestAddItemMergesByProductKeepingFirstSnapshot(t *testing.T) {
	store := NewStore(testServices())

	store.AddItem(CartItem{ProductID: "p1", Name: "Ciment", Price: 30, Quantity: 1})
	// A later add carries a fresher catalog price; the stored line keeps
	// the original snapshot and only the quantity grows.
	store.AddItem(CartItem{ProductID: "p1", Name: "Ciment Portland", Price: 35, Quantity: 2})

	cart := store.Snapshot().Cart
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Ciment", cart.Items[0].Name)
	assert.Equal(t, 30.0, cart.Items[0].Price)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.InDelta(t, 90.0, cart.Subtotal, 1e-9)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	store := NewStore(testServices())

	store.AddItem(CartItem{ProductID: "p1", Price: 10, Quantity: -3})

	cart := store.Snapshot().Cart
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	store := NewStore(testServices())

	store.AddItem(CartItem{ProductID: "p1", Price: 10, Quantity: 2})
	store.AddItem(CartItem{ProductID: "p2", Price: 5, Quantity: 1})
	store.UpdateQuantity("p1", 0)

	cart := store.Snapshot().Cart
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
	assert.InDelta(t, 5.0, cart.Subtotal, 1e-9)
}

func TestUpdateQuantityUnknownProductIsNoOp(t *testing.T) {
	store := NewStore(testServices())

	store.AddItem(CartItem{ProductID: "p1", Price: 10, Quantity: 2})
	before := store.Snapshot().Cart

	store.UpdateQuantity("missing", 7)

	assert.Equal(t, before, store.Snapshot().Cart)
}

func TestSnapshotIsIsolatedFromStore(t *testing.T) {
	store := NewStore(testServices())
	store.AddItem(CartItem{ProductID: "p1", Price: 10, Quantity: 1})

	snap := store.Snapshot()
	snap.Cart.Items[0].Quantity = 99

	assert.Equal(t, 1, store.Snapshot().Cart.Items[0].Quantity)
}

func TestSubscriberSeesCartMutations(t *testing.T) {
	store := NewStore(testServices())
	id, ch := store.Subscribe()
	defer store.Unsubscribe(id)

	store.AddItem(CartItem{ProductID: "p1", Price: 10, Quantity: 1})
	// Several rapid mutations coalesce into at least one pending signal.
	store.AddItem(CartItem{ProductID: "p2", Price: 5, Quantity: 1})
	store.RemoveItem("p1")

	select {
	case <-ch:
	default:
		t.Fatal("expected a pending change notification")
	}

	cart := store.Snapshot().Cart
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
}

package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/construmat/backend/internal/product/domain"
)

func TestUpdateStockAdjusts(t *testing.T) {
	repo := newFakeProductRepo()
	id := repo.add(domain.Product{Name: "Adeziv", SKU: "ADZ-1", Stock: 10})
	handler := NewUpdateStockHandler(repo)

	require.NoError(t, handler.Handle(context.Background(), UpdateStockCommand{ProductID: id.Hex(), Delta: -4}))
	require.NoError(t, handler.Handle(context.Background(), UpdateStockCommand{ProductID: id.Hex(), Delta: 20}))

	stored, ok := repo.get(id)
	require.True(t, ok)
	assert.Equal(t, 26, stored.Stock)
}

func TestUpdateStockRejectsNegativeResult(t *testing.T) {
	repo := newFakeProductRepo()
	id := repo.add(domain.Product{Name: "Adeziv", SKU: "ADZ-1", Stock: 3})
	handler := NewUpdateStockHandler(repo)

	err := handler.Handle(context.Background(), UpdateStockCommand{ProductID: id.Hex(), Delta: -5})
	assert.EqualError(t, err, "stock cannot go negative")

	stored, _ := repo.get(id)
	assert.Equal(t, 3, stored.Stock)
}

func TestUpdateStockUnknownProduct(t *testing.T) {
	handler := NewUpdateStockHandler(newFakeProductRepo())

	err := handler.Handle(context.Background(), UpdateStockCommand{ProductID: "000000000000000000000000", Delta: 1})
	assert.EqualError(t, err, "product not found")
}

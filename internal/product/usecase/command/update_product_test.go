package command

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/construmat/backend/internal/product/domain"
	"github.com/construmat/backend/pkg/storage"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func strPtr(s string) *string     { return &s }

func TestUpdateProductPartialFields(t *testing.T) {
	repo := newFakeProductRepo()
	id := repo.add(domain.Product{
		Name:     "Vopsea lavabila 10L",
		Category: "paint",
		Price:    89,
		Stock:    40,
		SKU:      "VOP-10",
		Status:   domain.StatusActive,
		Tags:     []string{"vopsea"},
	})
	handler := NewUpdateProductHandler(repo, storage.NewMemoryStorage("http://localhost:8080/uploads"))

	product, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID:    id.Hex(),
		Price: floatPtr(95),
		Stock: intPtr(35),
	})
	require.NoError(t, err)

	assert.Equal(t, 95.0, product.Price)
	assert.Equal(t, 35, product.Stock)
	assert.Equal(t, "Vopsea lavabila 10L", product.Name)
	assert.Equal(t, []string{"vopsea"}, product.Tags)
	assert.Equal(t, 1, repo.updateCalls)
}

func TestUpdateProductReplacesImagesAndReleasesOldBlobs(t *testing.T) {
	store := storage.NewMemoryStorage("http://localhost:8080/uploads")
	oldURL, err := store.Store(context.Background(), []byte("old"), "products/old.jpg")
	require.NoError(t, err)

	repo := newFakeProductRepo()
	id := repo.add(domain.Product{
		Name:   "Caramida",
		SKU:    "CAR-1",
		Images: []string{oldURL},
	})
	handler := NewUpdateProductHandler(repo, store)

	product, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID:        id.Hex(),
		NewImages: []ImageUpload{{Name: "new.jpg", Data: []byte("new")}},
	})
	require.NoError(t, err)

	require.Len(t, product.Images, 1)
	assert.True(t, strings.HasSuffix(product.Images[0], "new.jpg"))
	assert.False(t, store.Has("products/old.jpg"))
	assert.Equal(t, 1, store.Len())
}

func TestUpdateProductRejectsNegativePrice(t *testing.T) {
	repo := newFakeProductRepo()
	id := repo.add(domain.Product{Name: "Nisip", SKU: "NIS-1", Price: 10})
	handler := NewUpdateProductHandler(repo, storage.NewMemoryStorage("http://localhost:8080/uploads"))

	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID:    id.Hex(),
		Price: floatPtr(-5),
	})
	assert.EqualError(t, err, "price cannot be negative")
	assert.Equal(t, 0, repo.updateCalls)
}

func TestUpdateProductNotFound(t *testing.T) {
	handler := NewUpdateProductHandler(newFakeProductRepo(), storage.NewMemoryStorage("http://localhost:8080/uploads"))

	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID:   "000000000000000000000000",
		Name: strPtr("x"),
	})
	assert.EqualError(t, err, "product not found")
}

func TestDeleteProductReleasesBlobs(t *testing.T) {
	store := storage.NewMemoryStorage("http://localhost:8080/uploads")
	url, err := store.Store(context.Background(), []byte("img"), "products/gone.jpg")
	require.NoError(t, err)

	repo := newFakeProductRepo()
	id := repo.add(domain.Product{Name: "Polistiren", SKU: "POL-1", Images: []string{url}})
	handler := NewDeleteProductHandler(repo, store)

	require.NoError(t, handler.Handle(context.Background(), DeleteProductCommand{ID: id.Hex()}))

	_, ok := repo.get(id)
	assert.False(t, ok)
	assert.Equal(t, 1, repo.deleteCalls)
	assert.Equal(t, 0, store.Len())
}

func TestDeleteProductNotFound(t *testing.T) {
	handler := NewDeleteProductHandler(newFakeProductRepo(), storage.NewMemoryStorage("http://localhost:8080/uploads"))

	err := handler.Handle(context.Background(), DeleteProductCommand{ID: "000000000000000000000000"})
	assert.EqualError(t, err, "product not found")
}

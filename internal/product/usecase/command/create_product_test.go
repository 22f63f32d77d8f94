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

func TestCreateProduct(t *testing.T) {
	repo := newFakeProductRepo()
	store := storage.NewMemoryStorage("http://localhost:8080/uploads")
	handler := NewCreateProductHandler(repo, store)

	product, err := handler.Handle(context.Background(), CreateProductCommand{
		Name:        "Ciment Portland 40kg",
		Description: "General purpose cement",
		Category:    "cement",
		Price:       32.5,
		Stock:       120,
		SKU:         "CEM-40-P",
		Tags:        []string{"ciment", "portland"},
		Images: []ImageUpload{
			{Name: "front.jpg", Data: []byte("front")},
			{Name: "back.jpg", Data: []byte("back")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, product)

	assert.False(t, product.ID.IsZero())
	assert.Equal(t, domain.StatusActive, product.Status)
	assert.Zero(t, product.Rating)
	assert.Zero(t, product.Sales)
	assert.False(t, product.CreatedAt.IsZero())

	require.Len(t, product.Images, 2)
	assert.True(t, strings.HasSuffix(product.Images[0], "front.jpg"))
	assert.True(t, strings.HasSuffix(product.Images[1], "back.jpg"))
	assert.Equal(t, 2, store.Len())

	stored, ok := repo.get(product.ID)
	require.True(t, ok)
	assert.Equal(t, "CEM-40-P", stored.SKU)
}

func TestCreateProductValidation(t *testing.T) {
	handler := NewCreateProductHandler(newFakeProductRepo(), storage.NewMemoryStorage("http://localhost:8080/uploads"))

	cases := []struct {
		name string
		cmd  CreateProductCommand
		want string
	}{
		{"missing name", CreateProductCommand{SKU: "X"}, "product name is required"},
		{"negative price", CreateProductCommand{Name: "a", SKU: "X", Price: -1}, "price cannot be negative"},
		{"negative stock", CreateProductCommand{Name: "a", SKU: "X", Stock: -1}, "stock cannot be negative"},
		{"missing sku", CreateProductCommand{Name: "a"}, "SKU is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tc.cmd)
			assert.EqualError(t, err, tc.want)
		})
	}
}

func TestCreateProductUploadFailureAbortsCreate(t *testing.T) {
	repo := newFakeProductRepo()
	store := storage.NewMemoryStorage("http://localhost:8080/uploads")
	store.FailPaths["broken.jpg"] = true
	handler := NewCreateProductHandler(repo, store)

	_, err := handler.Handle(context.Background(), CreateProductCommand{
		Name:  "Gresie 30x30",
		SKU:   "GRS-30",
		Price: 45,
		Images: []ImageUpload{
			{Name: "ok.jpg", Data: []byte("ok")},
			{Name: "broken.jpg", Data: []byte("nope")},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image upload failed")
	assert.Equal(t, 0, repo.createCalls)
}

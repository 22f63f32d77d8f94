package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/construmat/backend/internal/product/domain"
	"github.com/construmat/backend/pkg/storage"
)

// ImageUpload is one image file submitted with a create or update.
type ImageUpload struct {
	Name string
	Data []byte
}

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name           string
	Description    string
	Category       string
	Price          float64
	Stock          int
	SKU            string
	Status         string
	Tags           []string
	Specifications map[string]string
	Images         []ImageUpload
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo    domain.ProductRepository
	storage storage.ObjectStorage
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository, store storage.ObjectStorage) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, storage: store}
}

// Handle executes the create product command. Images are uploaded in
// parallel; any upload failure aborts the create and leaves already
// uploaded blobs orphaned.
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}
	if cmd.SKU == "" {
		return nil, fmt.Errorf("SKU is required")
	}

	status := cmd.Status
	if status == "" {
		status = domain.StatusActive
	}

	urls, err := uploadImages(ctx, h.storage, cmd.Images)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:           cmd.Name,
		Description:    cmd.Description,
		Category:       cmd.Category,
		Price:          cmd.Price,
		Stock:          cmd.Stock,
		SKU:            cmd.SKU,
		Images:         urls,
		Status:         status,
		Rating:         0,
		Sales:          0,
		Tags:           cmd.Tags,
		Specifications: cmd.Specifications,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// uploadImages stores all uploads concurrently, preserving input order in
// the returned URL list. The first failure aborts the whole batch.
func uploadImages(ctx context.Context, store storage.ObjectStorage, images []ImageUpload) ([]string, error) {
	if len(images) == 0 {
		return nil, nil
	}

	type result struct {
		index int
		url   string
		err   error
	}

	results := make(chan result, len(images))
	for i, img := range images {
		go func(i int, img ImageUpload) {
			path := fmt.Sprintf("products/%s-%s", uuid.NewString(), img.Name)
			url, err := store.Store(ctx, img.Data, path)
			results <- result{index: i, url: url, err: err}
		}(i, img)
	}

	urls := make([]string, len(images))
	for range images {
		res := <-results
		if res.err != nil {
			return nil, fmt.Errorf("image upload failed: %w", res.err)
		}
		urls[res.index] = res.url
	}
	return urls, nil
}

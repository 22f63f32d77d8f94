package command

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/internal/product/domain"
	"github.com/construmat/backend/pkg/logger"
	"github.com/construmat/backend/pkg/storage"
)

// UpdateProductCommand carries a partial update; nil fields are untouched.
// NewImages, when present, fully replaces the existing image list.
type UpdateProductCommand struct {
	ID             string
	Name           *string
	Description    *string
	Category       *string
	Price          *float64
	Stock          *int
	SKU            *string
	Status         *string
	Rating         *float64
	Tags           []string
	Specifications map[string]string
	NewImages      []ImageUpload
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo    domain.ProductRepository
	storage storage.ObjectStorage
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository, store storage.ObjectStorage) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, storage: store}
}

// Handle executes the update product command. Replaced image blobs are
// released after the document write commits; release failures are logged
// and never propagated.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	id, err := primitive.ObjectIDFromHex(cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id")
	}

	product, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	if cmd.Name != nil {
		product.Name = *cmd.Name
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
	}
	if cmd.Category != nil {
		product.Category = *cmd.Category
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative")
		}
		product.Price = *cmd.Price
	}
	if cmd.Stock != nil {
		if *cmd.Stock < 0 {
			return nil, fmt.Errorf("stock cannot be negative")
		}
		product.Stock = *cmd.Stock
	}
	if cmd.SKU != nil {
		product.SKU = *cmd.SKU
	}
	if cmd.Status != nil {
		product.Status = *cmd.Status
	}
	if cmd.Rating != nil {
		product.Rating = *cmd.Rating
	}
	if cmd.Tags != nil {
		product.Tags = cmd.Tags
	}
	if cmd.Specifications != nil {
		product.Specifications = cmd.Specifications
	}

	var replacedImages []string
	if len(cmd.NewImages) > 0 {
		urls, err := uploadImages(ctx, h.storage, cmd.NewImages)
		if err != nil {
			return nil, err
		}
		replacedImages = product.Images
		product.Images = urls
	}

	product.UpdatedAt = time.Now()

	if err := h.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	releaseBlobs(ctx, h.storage, replacedImages)

	return product, nil
}

// releaseBlobs removes storage blobs behind the given URLs, best-effort.
func releaseBlobs(ctx context.Context, store storage.ObjectStorage, urls []string) {
	for _, url := range urls {
		path := storage.PathFromURL(url)
		if path == "" {
			continue
		}
		if err := store.RemoveByPath(ctx, path); err != nil {
			logger.Warn(ctx).Err(err).Str("path", path).Msg("Failed to release image blob")
		}
	}
}

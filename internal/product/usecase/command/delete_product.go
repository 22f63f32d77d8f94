package command

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/internal/product/domain"
	"github.com/construmat/backend/pkg/storage"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID string
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	repo    domain.ProductRepository
	storage storage.ObjectStorage
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository, store storage.ObjectStorage) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, storage: store}
}

// Handle hard-removes the product document. Image blobs are released
// best-effort afterwards; referencing orders are not checked, their item
// snapshots stay intact.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	id, err := primitive.ObjectIDFromHex(cmd.ID)
	if err != nil {
		return fmt.Errorf("invalid product id")
	}

	product, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("product not found")
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	releaseBlobs(ctx, h.storage, product.Images)
	return nil
}

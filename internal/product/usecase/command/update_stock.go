package command

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/internal/product/domain"
)

// UpdateStockCommand applies a stock adjustment, positive or negative.
type UpdateStockCommand struct {
	ProductID string
	Delta     int
}

// UpdateStockHandler handles stock adjustment command
type UpdateStockHandler struct {
	repo domain.ProductRepository
}

// NewUpdateStockHandler creates a new update stock handler
func NewUpdateStockHandler(repo domain.ProductRepository) *UpdateStockHandler {
	return &UpdateStockHandler{repo: repo}
}

// Handle executes the stock adjustment as a single atomic increment.
func (h *UpdateStockHandler) Handle(ctx context.Context, cmd UpdateStockCommand) error {
	id, err := primitive.ObjectIDFromHex(cmd.ProductID)
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
	if product.Stock+cmd.Delta < 0 {
		return fmt.Errorf("stock cannot go negative")
	}

	if err := h.repo.AdjustStock(ctx, id, cmd.Delta); err != nil {
		return fmt.Errorf("failed to adjust stock: %w", err)
	}

	return nil
}

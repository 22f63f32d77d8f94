package command

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/internal/user/domain"
)

// ChangeRoleCommand switches a user between customer and admin.
type ChangeRoleCommand struct {
	ID   string
	Role string
}

// ChangeRoleHandler handles role change command
type ChangeRoleHandler struct {
	repo domain.UserRepository
}

// NewChangeRoleHandler creates a new change role handler
func NewChangeRoleHandler(repo domain.UserRepository) *ChangeRoleHandler {
	return &ChangeRoleHandler{repo: repo}
}

// Handle executes the change role command
func (h *ChangeRoleHandler) Handle(ctx context.Context, cmd ChangeRoleCommand) (*domain.User, error) {
	if cmd.Role != domain.RoleCustomer && cmd.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("invalid role: %s", cmd.Role)
	}

	id, err := primitive.ObjectIDFromHex(cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id")
	}

	user, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	user.Role = cmd.Role
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

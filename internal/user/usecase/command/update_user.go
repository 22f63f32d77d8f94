package command

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/internal/user/domain"
)

// UpdateUserCommand carries a partial profile update; nil fields are
// untouched.
type UpdateUserCommand struct {
	ID          string
	Name        *string
	Addresses   []domain.Address
	Preferences *domain.Preferences
}

// UpdateUserHandler handles profile update command
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command
func (h *UpdateUserHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*domain.User, error) {
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

	if cmd.Name != nil {
		user.Name = *cmd.Name
	}
	if cmd.Addresses != nil {
		user.Addresses = cmd.Addresses
	}
	if cmd.Preferences != nil {
		user.Preferences = *cmd.Preferences
	}
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

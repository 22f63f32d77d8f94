package query

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/internal/user/domain"
)

// GetUserQuery represents the query to get a single user
type GetUserQuery struct {
	ID string
}

// GetUserHandler handles get user query
type GetUserHandler struct {
	repo domain.UserRepository
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle returns the user or (nil, nil) when the id does not exist.
func (h *GetUserHandler) Handle(ctx context.Context, q GetUserQuery) (*domain.User, error) {
	id, err := primitive.ObjectIDFromHex(q.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id")
	}
	return h.repo.FindByID(ctx, id)
}

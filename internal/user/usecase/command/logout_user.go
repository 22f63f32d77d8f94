package command

import (
	"context"
	"fmt"
	"time"

	"github.com/construmat/backend/pkg/auth"
)

// LogoutUserCommand revokes the current session token.
type LogoutUserCommand struct {
	Token string
}

// LogoutUserHandler handles sign-out by denylisting the token id for the
// remainder of the token's lifetime.
type LogoutUserHandler struct {
	denylist auth.Denylist
}

// NewLogoutUserHandler creates a new logout handler
func NewLogoutUserHandler(denylist auth.Denylist) *LogoutUserHandler {
	return &LogoutUserHandler{denylist: denylist}
}

// Handle executes the logout command
func (h *LogoutUserHandler) Handle(ctx context.Context, cmd LogoutUserCommand) error {
	claims, err := auth.ValidateToken(cmd.Token)
	if err != nil {
		return fmt.Errorf("invalid token")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := h.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/construmat/backend/pkg/auth"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
	TokenKey  contextKey = "token"
)

// AuthMiddleware validates the JWT token and rejects revoked sessions.
func AuthMiddleware(denylist auth.Denylist, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		if denylist != nil {
			revoked, err := denylist.IsRevoked(r.Context(), claims.ID)
			if err == nil && revoked {
				respondError(w, http.StatusUnauthorized, "Session revoked")
				return
			}
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		ctx = context.WithValue(ctx, TokenKey, parts[1])

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// AdminMiddleware checks if the authenticated user has the admin role.
func AdminMiddleware(denylist auth.Denylist, next http.HandlerFunc) http.HandlerFunc {
	return AuthMiddleware(denylist, func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(RoleKey).(string)
		if !ok || role != "admin" {
			respondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

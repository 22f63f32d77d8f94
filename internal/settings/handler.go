package settings

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/construmat/backend/pkg/auth"
	"github.com/construmat/backend/pkg/logger"
)

// Handler handles HTTP requests for store settings.
type Handler struct {
	repo     Repository
	denylist auth.Denylist
}

func NewHandler(repo Repository, denylist auth.Denylist) *Handler {
	return &Handler{repo: repo, denylist: denylist}
}

type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/settings", h.Get).Methods("GET")
	router.HandleFunc("/api/settings", h.requireAdmin(h.Update)).Methods("PUT")
}

// requireAdmin validates the session token and the admin role.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.Header.Get("Authorization"), " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respond(w, http.StatusUnauthorized, response{Success: false, Error: "Authorization header required"})
			return
		}
		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			respond(w, http.StatusUnauthorized, response{Success: false, Error: "Invalid token"})
			return
		}
		if h.denylist != nil {
			if revoked, err := h.denylist.IsRevoked(r.Context(), claims.ID); err == nil && revoked {
				respond(w, http.StatusUnauthorized, response{Success: false, Error: "Session revoked"})
				return
			}
		}
		if claims.Role != "admin" {
			respond(w, http.StatusForbidden, response{Success: false, Error: "Admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	}
}

// Get handles GET /api/settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.repo.Get(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to load settings")
		respond(w, http.StatusInternalServerError, response{Success: false, Error: "Failed to load settings"})
		return
	}
	respond(w, http.StatusOK, response{Success: true, Data: s})
}

// Update handles PUT /api/settings (admin)
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	current, err := h.repo.Get(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, response{Success: false, Error: "Failed to load settings"})
		return
	}

	var req struct {
		StoreName             *string  `json:"store_name"`
		ContactEmail          *string  `json:"contact_email"`
		ContactPhone          *string  `json:"contact_phone"`
		Currency              *string  `json:"currency"`
		TaxRate               *float64 `json:"tax_rate"`
		FreeShippingThreshold *float64 `json:"free_shipping_threshold"`
		FlatShippingFee       *float64 `json:"flat_shipping_fee"`
		MaintenanceMode       *bool    `json:"maintenance_mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, response{Success: false, Error: "Invalid request body"})
		return
	}

	if req.StoreName != nil {
		current.StoreName = *req.StoreName
	}
	if req.ContactEmail != nil {
		current.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		current.ContactPhone = *req.ContactPhone
	}
	if req.Currency != nil {
		current.Currency = *req.Currency
	}
	if req.TaxRate != nil {
		if *req.TaxRate < 0 || *req.TaxRate > 1 {
			respond(w, http.StatusBadRequest, response{Success: false, Error: "Tax rate must be between 0 and 1"})
			return
		}
		current.TaxRate = *req.TaxRate
	}
	if req.FreeShippingThreshold != nil {
		current.FreeShippingThreshold = *req.FreeShippingThreshold
	}
	if req.FlatShippingFee != nil {
		current.FlatShippingFee = *req.FlatShippingFee
	}
	if req.MaintenanceMode != nil {
		current.MaintenanceMode = *req.MaintenanceMode
	}

	if err := h.repo.Save(r.Context(), current); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to save settings")
		respond(w, http.StatusInternalServerError, response{Success: false, Error: "Failed to save settings"})
		return
	}

	respond(w, http.StatusOK, response{Success: true, Message: "Settings updated successfully", Data: current})
}

func respond(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

package category

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/pkg/auth"
	"github.com/construmat/backend/pkg/logger"
)

// Handler handles HTTP requests for categories.
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
	router.HandleFunc("/api/categories", h.List).Methods("GET")
	router.HandleFunc("/api/categories/{slug}", h.GetBySlug).Methods("GET")

	router.HandleFunc("/api/categories", h.requireAdmin(h.Create)).Methods("POST")
	router.HandleFunc("/api/categories/{id}", h.requireAdmin(h.Update)).Methods("PUT")
	router.HandleFunc("/api/categories/{id}", h.requireAdmin(h.Delete)).Methods("DELETE")
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

// List handles GET /api/categories
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.FindAll(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list categories")
		respond(w, http.StatusInternalServerError, response{Success: false, Error: "Failed to list categories"})
		return
	}
	respond(w, http.StatusOK, response{Success: true, Data: categories})
}

// GetBySlug handles GET /api/categories/{slug}
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	category, err := h.repo.FindBySlug(r.Context(), vars["slug"])
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get category")
		respond(w, http.StatusInternalServerError, response{Success: false, Error: "Failed to get category"})
		return
	}
	if category == nil {
		respond(w, http.StatusNotFound, response{Success: false, Error: "Category not found"})
		return
	}
	respond(w, http.StatusOK, response{Success: true, Data: category})
}

// Create handles POST /api/categories (admin)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Slug        string `json:"slug"`
		Image       string `json:"image"`
		ParentID    string `json:"parent_id"`
		IsActive    *bool  `json:"is_active"`
		SortOrder   int    `json:"sort_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, response{Success: false, Error: "Invalid request body"})
		return
	}
	if req.Name == "" || req.Slug == "" {
		respond(w, http.StatusBadRequest, response{Success: false, Error: "Name and slug are required"})
		return
	}

	// Slug is the lookup key, keep it unique
	if existing, err := h.repo.FindBySlug(r.Context(), req.Slug); err == nil && existing != nil {
		respond(w, http.StatusConflict, response{Success: false, Error: "Slug already exists"})
		return
	}

	category := &Category{
		Name:        req.Name,
		Description: req.Description,
		Slug:        req.Slug,
		Image:       req.Image,
		IsActive:    true,
		SortOrder:   req.SortOrder,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.ParentID != "" {
		parentID, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			respond(w, http.StatusBadRequest, response{Success: false, Error: "Invalid parent id"})
			return
		}
		category.ParentID = &parentID
	}

	if err := h.repo.Create(r.Context(), category); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create category")
		respond(w, http.StatusInternalServerError, response{Success: false, Error: "Failed to create category"})
		return
	}

	respond(w, http.StatusCreated, response{Success: true, Message: "Category created successfully", Data: category})
}

// Update handles PUT /api/categories/{id} (admin)
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respond(w, http.StatusBadRequest, response{Success: false, Error: "Invalid category id"})
		return
	}

	category, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		respond(w, http.StatusInternalServerError, response{Success: false, Error: "Failed to load category"})
		return
	}
	if category == nil {
		respond(w, http.StatusNotFound, response{Success: false, Error: "Category not found"})
		return
	}

	var req struct {
		Name         *string `json:"name"`
		Description  *string `json:"description"`
		Image        *string `json:"image"`
		IsActive     *bool   `json:"is_active"`
		SortOrder    *int    `json:"sort_order"`
		ProductCount *int    `json:"product_count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, response{Success: false, Error: "Invalid request body"})
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Image != nil {
		category.Image = *req.Image
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.ProductCount != nil {
		category.ProductCount = *req.ProductCount
	}
	category.UpdatedAt = time.Now()

	if err := h.repo.Update(r.Context(), category); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update category")
		respond(w, http.StatusInternalServerError, response{Success: false, Error: "Failed to update category"})
		return
	}

	respond(w, http.StatusOK, response{Success: true, Message: "Category updated successfully", Data: category})
}

// Delete handles DELETE /api/categories/{id} (admin)
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respond(w, http.StatusBadRequest, response{Success: false, Error: "Invalid category id"})
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to delete category")
		respond(w, http.StatusInternalServerError, response{Success: false, Error: "Failed to delete category"})
		return
	}

	respond(w, http.StatusOK, response{Success: true, Message: "Category deleted successfully"})
}

func respond(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/construmat/backend/internal/user/domain"
	"github.com/construmat/backend/internal/user/usecase/command"
	"github.com/construmat/backend/internal/user/usecase/query"
	"github.com/construmat/backend/pkg/auth"
	"github.com/construmat/backend/pkg/logger"
)

// UserHandler handles HTTP requests for accounts and sessions.
type UserHandler struct {
	registerHandler   *command.RegisterUserHandler
	loginHandler      *command.LoginUserHandler
	logoutHandler     *command.LogoutUserHandler
	updateHandler     *command.UpdateUserHandler
	changeRoleHandler *command.ChangeRoleHandler
	deleteHandler     *command.DeleteUserHandler

	getHandler  *query.GetUserHandler
	listHandler *query.ListUsersHandler

	denylist       auth.Denylist
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	registrations  prometheus.Counter
	logins         prometheus.Counter
}

// NewUserHandler creates a new user handler (manual DI).
func NewUserHandler(repo domain.UserRepository, denylist auth.Denylist) *UserHandler {
	return NewUserHandlerWithDI(
		command.NewRegisterUserHandler(repo),
		command.NewLoginUserHandler(repo),
		command.NewLogoutUserHandler(denylist),
		command.NewUpdateUserHandler(repo),
		command.NewChangeRoleHandler(repo),
		command.NewDeleteUserHandler(repo),
		query.NewGetUserHandler(repo),
		query.NewListUsersHandler(repo),
		denylist,
	)
}

// NewUserHandlerWithDI creates a new user handler from prebuilt usecase
// handlers. Used by Wire.
func NewUserHandlerWithDI(
	registerHandler *command.RegisterUserHandler,
	loginHandler *command.LoginUserHandler,
	logoutHandler *command.LogoutUserHandler,
	updateHandler *command.UpdateUserHandler,
	changeRoleHandler *command.ChangeRoleHandler,
	deleteHandler *command.DeleteUserHandler,
	getHandler *query.GetUserHandler,
	listHandler *query.ListUsersHandler,
	denylist auth.Denylist,
) *UserHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_requests_total",
			Help: "Total number of requests to the account endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_request_duration_seconds",
			Help:    "Duration of account requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	registrations := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "user_registrations_total",
			Help: "Total number of accounts registered",
		},
	)

	logins := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "user_logins_total",
			Help: "Total number of successful sign-ins",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(registrations)
	prometheus.MustRegister(logins)

	return &UserHandler{
		registerHandler:   registerHandler,
		loginHandler:      loginHandler,
		logoutHandler:     logoutHandler,
		updateHandler:     updateHandler,
		changeRoleHandler: changeRoleHandler,
		deleteHandler:     deleteHandler,
		getHandler:        getHandler,
		listHandler:       listHandler,
		denylist:          denylist,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		registrations:     registrations,
		logins:            logins,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	// Session routes
	router.HandleFunc("/api/auth/register", h.metricsMiddleware("/api/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/api/auth/login", h.metricsMiddleware("/api/auth/login", h.Login)).Methods("POST")
	router.HandleFunc("/api/auth/logout", h.metricsMiddleware("/api/auth/logout", AuthMiddleware(h.denylist, h.Logout))).Methods("POST")

	// Profile routes
	router.HandleFunc("/api/users/me", h.metricsMiddleware("/api/users/me", AuthMiddleware(h.denylist, h.Me))).Methods("GET")
	router.HandleFunc("/api/users/me", h.metricsMiddleware("/api/users/me", AuthMiddleware(h.denylist, h.UpdateMe))).Methods("PUT")

	// Admin routes
	router.HandleFunc("/api/users", h.metricsMiddleware("/api/users", AdminMiddleware(h.denylist, h.ListUsers))).Methods("GET")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", AdminMiddleware(h.denylist, h.GetUser))).Methods("GET")
	router.HandleFunc("/api/users/{id}/role", h.metricsMiddleware("/api/users/{id}/role", AdminMiddleware(h.denylist, h.ChangeRole))).Methods("PUT")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", AdminMiddleware(h.denylist, h.DeleteUser))).Methods("DELETE")
}

// Register handles POST /api/auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.registerHandler.Handle(r.Context(), command.RegisterUserCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Registration rejected")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	h.registrations.Inc()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Account created successfully",
		Data:    user,
	})
}

// Login handles POST /api/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	result, err := h.loginHandler.Handle(r.Context(), command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: err.Error()})
		return
	}

	h.logins.Inc()

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// Logout handles POST /api/auth/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := r.Context().Value(TokenKey).(string)

	if err := h.logoutHandler.Handle(r.Context(), command.LogoutUserCommand{Token: token}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to revoke session")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to sign out"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Signed out"})
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(UserIDKey).(string)

	user, err := h.getHandler.Handle(r.Context(), query.GetUserQuery{ID: userID})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}
	if user == nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "User not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// UpdateMe handles PUT /api/users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(UserIDKey).(string)

	var req struct {
		Name        *string             `json:"name"`
		Addresses   []domain.Address    `json:"addresses"`
		Preferences *domain.Preferences `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.updateHandler.Handle(r.Context(), command.UpdateUserCommand{
		ID:          userID,
		Name:        req.Name,
		Addresses:   req.Addresses,
		Preferences: req.Preferences,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update profile")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Profile updated successfully",
		Data:    user,
	})
}

// ListUsers handles GET /api/users (admin)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.listHandler.Handle(r.Context(), query.ListUsersQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list users")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list users"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: users})
}

// GetUser handles GET /api/users/{id} (admin)
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	user, err := h.getHandler.Handle(r.Context(), query.GetUserQuery{ID: vars["id"]})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}
	if user == nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "User not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// ChangeRole handles PUT /api/users/{id}/role (admin)
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.changeRoleHandler.Handle(r.Context(), command.ChangeRoleCommand{
		ID:   vars["id"],
		Role: req.Role,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to change role")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Role updated successfully",
		Data:    user,
	})
}

// DeleteUser handles DELETE /api/users/{id} (admin)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteUserCommand{ID: vars["id"]}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to delete user")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "User deleted"})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

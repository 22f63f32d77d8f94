package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/construmat/backend/internal/order/domain"
	"github.com/construmat/backend/internal/order/usecase/command"
	"github.com/construmat/backend/internal/order/usecase/query"
	productdomain "github.com/construmat/backend/internal/product/domain"
	"github.com/construmat/backend/pkg/auth"
	"github.com/construmat/backend/pkg/logger"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	createHandler *command.CreateOrderHandler
	updateHandler *command.UpdateOrderHandler
	cancelHandler *command.CancelOrderHandler

	getHandler    *query.GetOrderHandler
	listHandler   *query.ListOrdersHandler
	byUserHandler *query.OrdersByUserHandler
	statsHandler  *query.GetStatsHandler

	denylist       auth.Denylist
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	ordersCreated  prometheus.Counter
}

// NewOrderHandler creates a new order handler (manual DI).
func NewOrderHandler(
	orders domain.OrderRepository,
	products productdomain.ProductRepository,
	publisher command.EventPublisher,
	denylist auth.Denylist,
) *OrderHandler {
	return NewOrderHandlerWithDI(
		command.NewCreateOrderHandler(orders, products, publisher),
		command.NewUpdateOrderHandler(orders),
		command.NewCancelOrderHandler(orders, publisher),
		query.NewGetOrderHandler(orders),
		query.NewListOrdersHandler(orders),
		query.NewOrdersByUserHandler(orders),
		query.NewGetStatsHandler(orders),
		denylist,
	)
}

// NewOrderHandlerWithDI creates a new order handler from prebuilt usecase
// handlers. Used by Wire.
func NewOrderHandlerWithDI(
	createHandler *command.CreateOrderHandler,
	updateHandler *command.UpdateOrderHandler,
	cancelHandler *command.CancelOrderHandler,
	getHandler *query.GetOrderHandler,
	listHandler *query.ListOrdersHandler,
	byUserHandler *query.OrdersByUserHandler,
	statsHandler *query.GetStatsHandler,
	denylist auth.Denylist,
) *OrderHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_requests_total",
			Help: "Total number of requests to the order endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_request_duration_seconds",
			Help:    "Duration of order requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ordersCreated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders placed",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(ordersCreated)

	return &OrderHandler{
		createHandler:  createHandler,
		updateHandler:  updateHandler,
		cancelHandler:  cancelHandler,
		getHandler:     getHandler,
		listHandler:    listHandler,
		byUserHandler:  byUserHandler,
		statsHandler:   statsHandler,
		denylist:       denylist,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		ordersCreated:  ordersCreated,
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

func (h *OrderHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	// Customer routes
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", AuthMiddleware(h.denylist, h.CreateOrder))).Methods("POST")
	router.HandleFunc("/api/orders/my", h.metricsMiddleware("/api/orders/my", AuthMiddleware(h.denylist, h.MyOrders))).Methods("GET")
	router.HandleFunc("/api/orders/{id}", h.metricsMiddleware("/api/orders/{id}", AuthMiddleware(h.denylist, h.GetOrder))).Methods("GET")
	router.HandleFunc("/api/orders/{id}/cancel", h.metricsMiddleware("/api/orders/{id}/cancel", AuthMiddleware(h.denylist, h.CancelOrder))).Methods("POST")

	// Admin routes
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", AdminMiddleware(h.denylist, h.ListOrders))).Methods("GET")
	router.HandleFunc("/api/orders/stats", h.metricsMiddleware("/api/orders/stats", AdminMiddleware(h.denylist, h.GetStats))).Methods("GET")
	router.HandleFunc("/api/orders/{id}", h.metricsMiddleware("/api/orders/{id}", AdminMiddleware(h.denylist, h.UpdateOrder))).Methods("PUT")
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
		PaymentMethod   string                 `json:"payment_method"`
		ShippingAddress domain.ShippingAddress `json:"shipping_address"`
		Notes           string                 `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	userID, _ := r.Context().Value(UserIDKey).(string)

	cmd := command.CreateOrderCommand{
		UserID:          userID,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, command.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create order")
		respondJSON(w, statusFor(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.ordersCreated.Inc()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order placed successfully",
		Data:    order,
	})
}

// ListOrders handles GET /api/orders (admin)
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter := domain.Filter{
		Status:        r.URL.Query().Get("status"),
		PaymentStatus: r.URL.Query().Get("payment_status"),
		UserID:        r.URL.Query().Get("user_id"),
	}
	if v := r.URL.Query().Get("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.From = t
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.To = t
		}
	}

	orders, err := h.listHandler.Handle(r.Context(), query.ListOrdersQuery{Filter: filter})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list orders")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list orders"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: orders})
}

// MyOrders handles GET /api/orders/my
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(UserIDKey).(string)

	orders, err := h.byUserHandler.Handle(r.Context(), query.OrdersByUserQuery{UserID: userID})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list user orders")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list orders"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: orders})
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	order, err := h.getHandler.Handle(r.Context(), query.GetOrderQuery{ID: vars["id"]})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}
	if order == nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Order not found"})
		return
	}

	// Customers may only read their own orders
	userID, _ := r.Context().Value(UserIDKey).(string)
	role, _ := r.Context().Value(RoleKey).(string)
	if role != "admin" && order.UserID != userID {
		respondJSON(w, http.StatusForbidden, Response{Success: false, Error: "Access denied"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: order})
}

// UpdateOrder handles PUT /api/orders/{id} (admin)
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Status         *string `json:"status"`
		PaymentStatus  *string `json:"payment_status"`
		TrackingNumber *string `json:"tracking_number"`
		Notes          *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cmd := command.UpdateOrderCommand{
		ID:             vars["id"],
		Status:         req.Status,
		PaymentStatus:  req.PaymentStatus,
		TrackingNumber: req.TrackingNumber,
		Notes:          req.Notes,
	}

	order, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update order")
		respondJSON(w, statusFor(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order updated successfully",
		Data:    order,
	})
}

// CancelOrder handles POST /api/orders/{id}/cancel
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Reason string `json:"reason"`
	}
	// Body is optional for cancellation
	_ = json.NewDecoder(r.Body).Decode(&req)

	// Customers may only cancel their own orders
	order, err := h.getHandler.Handle(r.Context(), query.GetOrderQuery{ID: vars["id"]})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}
	if order == nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Order not found"})
		return
	}
	userID, _ := r.Context().Value(UserIDKey).(string)
	role, _ := r.Context().Value(RoleKey).(string)
	if role != "admin" && order.UserID != userID {
		respondJSON(w, http.StatusForbidden, Response{Success: false, Error: "Access denied"})
		return
	}

	cancelled, err := h.cancelHandler.Handle(r.Context(), command.CancelOrderCommand{
		ID:     vars["id"],
		Reason: req.Reason,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to cancel order")
		respondJSON(w, statusFor(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order cancelled",
		Data:    cancelled,
	})
}

// GetStats handles GET /api/orders/stats (admin)
func (h *OrderHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get order stats")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to get statistics"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// statusFor maps rejected preconditions to 409 and everything else to 400.
func statusFor(err error) int {
	if domain.IsPrecondition(err) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/construmat/backend/internal/product/domain"
	"github.com/construmat/backend/internal/product/usecase/command"
	"github.com/construmat/backend/internal/product/usecase/query"
	"github.com/construmat/backend/pkg/auth"
	"github.com/construmat/backend/pkg/logger"
	"github.com/construmat/backend/pkg/storage"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	createHandler      *command.CreateProductHandler
	updateHandler      *command.UpdateProductHandler
	deleteHandler      *command.DeleteProductHandler
	updateStockHandler *command.UpdateStockHandler

	getHandler        *query.GetProductHandler
	listHandler       *query.ListProductsHandler
	searchHandler     *query.SearchProductsHandler
	byCategoryHandler *query.ProductsByCategoryHandler

	denylist       auth.Denylist
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewProductHandler creates a new product handler (manual DI).
func NewProductHandler(repo domain.ProductRepository, store storage.ObjectStorage, denylist auth.Denylist) *ProductHandler {
	return NewProductHandlerWithDI(
		command.NewCreateProductHandler(repo, store),
		command.NewUpdateProductHandler(repo, store),
		command.NewDeleteProductHandler(repo, store),
		command.NewUpdateStockHandler(repo),
		query.NewGetProductHandler(repo),
		query.NewListProductsHandler(repo),
		query.NewSearchProductsHandler(repo),
		query.NewProductsByCategoryHandler(repo),
		denylist,
	)
}

// NewProductHandlerWithDI creates a new product handler from prebuilt
// usecase handlers. Used by Wire.
func NewProductHandlerWithDI(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	updateStockHandler *command.UpdateStockHandler,
	getHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	searchHandler *query.SearchProductsHandler,
	byCategoryHandler *query.ProductsByCategoryHandler,
	denylist auth.Denylist,
) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of requests to the catalog endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &ProductHandler{
		createHandler:      createHandler,
		updateHandler:      updateHandler,
		deleteHandler:      deleteHandler,
		updateStockHandler: updateStockHandler,
		getHandler:         getHandler,
		listHandler:        listHandler,
		searchHandler:      searchHandler,
		byCategoryHandler:  byCategoryHandler,
		denylist:           denylist,
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	// Public catalog routes
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/search", h.metricsMiddleware("/api/products/search", h.SearchProducts)).Methods("GET")
	router.HandleFunc("/api/products/category/{category}", h.metricsMiddleware("/api/products/category/{category}", h.ProductsByCategory)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")

	// Admin routes
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", AdminMiddleware(h.denylist, h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", AdminMiddleware(h.denylist, h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", AdminMiddleware(h.denylist, h.DeleteProduct))).Methods("DELETE")
	router.HandleFunc("/api/products/{id}/stock", h.metricsMiddleware("/api/products/{id}/stock", AdminMiddleware(h.denylist, h.UpdateStock))).Methods("PATCH")
}

// CreateProduct handles POST /api/products (multipart form with images)
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid multipart form"})
		return
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	stock, _ := strconv.Atoi(r.FormValue("stock"))

	cmd := command.CreateProductCommand{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Price:       price,
		Stock:       stock,
		SKU:         r.FormValue("sku"),
		Status:      r.FormValue("status"),
	}

	if tags := r.FormValue("tags"); tags != "" {
		if err := json.Unmarshal([]byte(tags), &cmd.Tags); err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid tags"})
			return
		}
	}
	if specs := r.FormValue("specifications"); specs != "" {
		if err := json.Unmarshal([]byte(specs), &cmd.Specifications); err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid specifications"})
			return
		}
	}

	images, err := readImageUploads(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Failed to read images"})
		return
	}
	cmd.Images = images

	product, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	minPrice, _ := strconv.ParseFloat(r.URL.Query().Get("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(r.URL.Query().Get("max_price"), 64)

	q := query.ListProductsQuery{
		PageSize: pageSize,
		Cursor:   r.URL.Query().Get("cursor"),
		Filter: domain.Filter{
			Category: r.URL.Query().Get("category"),
			Status:   r.URL.Query().Get("status"),
			MinPrice: minPrice,
			MaxPrice: maxPrice,
		},
	}

	page, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list products"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: page})
}

// SearchProducts handles GET /api/products/search?q=term
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.searchHandler.Handle(r.Context(), query.SearchProductsQuery{
		Term: r.URL.Query().Get("q"),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to search products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to search products"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// ProductsByCategory handles GET /api/products/category/{category}
func (h *ProductHandler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	products, err := h.byCategoryHandler.Handle(r.Context(), query.ProductsByCategoryQuery{
		Category: vars["category"],
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list category products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list category products"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	product, err := h.getHandler.Handle(r.Context(), query.GetProductQuery{ID: vars["id"]})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}
	if product == nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Product not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// UpdateProduct handles PUT /api/products/{id} (multipart form, partial)
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid multipart form"})
		return
	}

	cmd := command.UpdateProductCommand{ID: vars["id"]}

	if v := r.FormValue("name"); v != "" {
		cmd.Name = &v
	}
	if v := r.FormValue("description"); v != "" {
		cmd.Description = &v
	}
	if v := r.FormValue("category"); v != "" {
		cmd.Category = &v
	}
	if v := r.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid price"})
			return
		}
		cmd.Price = &price
	}
	if v := r.FormValue("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid stock"})
			return
		}
		cmd.Stock = &stock
	}
	if v := r.FormValue("sku"); v != "" {
		cmd.SKU = &v
	}
	if v := r.FormValue("status"); v != "" {
		cmd.Status = &v
	}
	if tags := r.FormValue("tags"); tags != "" {
		if err := json.Unmarshal([]byte(tags), &cmd.Tags); err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid tags"})
			return
		}
	}
	if specs := r.FormValue("specifications"); specs != "" {
		if err := json.Unmarshal([]byte(specs), &cmd.Specifications); err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid specifications"})
			return
		}
	}

	images, err := readImageUploads(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Failed to read images"})
		return
	}
	cmd.NewImages = images

	product, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update product")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: vars["id"]}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to delete product")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product deleted successfully"})
}

// UpdateStock handles PATCH /api/products/{id}/stock
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cmd := command.UpdateStockCommand{ProductID: vars["id"], Delta: req.Delta}
	if err := h.updateStockHandler.Handle(r.Context(), cmd); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to adjust stock")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Stock updated successfully"})
}

// readImageUploads collects the uploaded image files from a multipart form.
func readImageUploads(r *http.Request) ([]command.ImageUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var uploads []command.ImageUpload
	for _, fh := range r.MultipartForm.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, command.ImageUpload{Name: fh.Filename, Data: data})
	}
	return uploads, nil
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

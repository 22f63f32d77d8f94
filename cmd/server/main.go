package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/construmat/backend/internal/category"
	orderhttp "github.com/construmat/backend/internal/order/delivery/http"
	orderrepo "github.com/construmat/backend/internal/order/repository"
	ordercommand "github.com/construmat/backend/internal/order/usecase/command"
	producthttp "github.com/construmat/backend/internal/product/delivery/http"
	productrepo "github.com/construmat/backend/internal/product/repository"
	"github.com/construmat/backend/internal/settings"
	userhttp "github.com/construmat/backend/internal/user/delivery/http"
	userrepo "github.com/construmat/backend/internal/user/repository"
	"github.com/construmat/backend/kafka"
	"github.com/construmat/backend/pkg/auth"
	"github.com/construmat/backend/pkg/database"
	"github.com/construmat/backend/pkg/logger"
	"github.com/construmat/backend/pkg/storage"
	"github.com/construmat/backend/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "construmat-backend")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting storefront backend")

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// MongoDB
	client, db, err := database.NewMongoConnection(database.Config{
		URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database: getEnv("MONGO_DATABASE", "construmat"),
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer database.Disconnect(client)

	logger.Logger.Info().Msg("Database initialized successfully")

	// Redis backs session revocation; without it logouts only last until
	// the process restarts
	var denylist auth.Denylist
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: getEnv("REDIS_PASSWORD", ""),
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("redis_addr", redisAddr).
			Msg("Failed to connect to Redis - using in-memory session denylist")
		denylist = auth.NewMemoryDenylist()
	} else {
		logger.Logger.Info().Str("redis_addr", redisAddr).Msg("Connected to Redis")
		denylist = auth.NewRedisDenylist(redisClient)
	}

	// Kafka order events are optional; order flow works without them
	var publisher ordercommand.EventPublisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		p, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to connect to Kafka - order events disabled")
		} else {
			defer p.Close()
			publisher = p
			logger.Logger.Info().Str("brokers", brokers).Msg("Kafka order events enabled")
		}
	}

	// Object storage for product images
	uploadDir := getEnv("UPLOAD_DIR", "./uploads")
	publicBaseURL := getEnv("PUBLIC_BASE_URL", "http://localhost:8080/uploads")
	objectStore, err := storage.NewDiskStorage(uploadDir, publicBaseURL)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize object storage")
	}

	// Repositories
	productRepository := productrepo.NewTracingProductRepository(productrepo.NewMongoProductRepository(db))
	orderRepository := orderrepo.NewMongoOrderRepository(db)
	userRepository := userrepo.NewMongoUserRepository(db)
	categoryRepository := category.NewMongoRepository(db)
	settingsRepository := settings.NewMongoRepository(db)

	// Handlers
	productHandler := producthttp.NewProductHandler(productRepository, objectStore, denylist)
	orderHandler := orderhttp.NewOrderHandler(orderRepository, productRepository, publisher, denylist)
	userHandler := userhttp.NewUserHandler(userRepository, denylist)
	categoryHandler := category.NewHandler(categoryRepository, denylist)
	settingsHandler := settings.NewHandler(settingsRepository, denylist)

	// Router
	router := mux.NewRouter()
	productHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router)
	categoryHandler.RegisterRoutes(router)
	settingsHandler.RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler())

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := client.Ping(ctx, nil); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Uploaded product images
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))),
	)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{getEnv("CORS_ALLOWED_ORIGINS", "*")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      c.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}

	logger.Logger.Info().Msg("Server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/construmat/backend/kafka"
	"github.com/construmat/backend/pkg/logger"
	"github.com/construmat/backend/pkg/tracing"
)

// Small sidecar that folds order events into Prometheus counters for the
// admin dashboard. It holds no state beyond the metrics registry, so a
// restart just resumes from the newest offset.
func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "order-analytics")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().Str("service", serviceName).Msg("Starting order analytics consumer")

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

	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analytics_orders_placed_total",
		Help: "Orders placed, observed from order events",
	})
	ordersCancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analytics_orders_cancelled_total",
		Help: "Orders cancelled, observed from order events",
	})
	revenue := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analytics_order_revenue_total",
		Help: "Sum of order totals at placement time",
	})
	itemsSold := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analytics_order_items_total",
		Help: "Order lines placed",
	})
	prometheus.MustRegister(ordersPlaced, ordersCancelled, revenue, itemsSold)

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "order-analytics")

	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicOrders})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeOrderCreated, func(ctx context.Context, payload []byte) error {
		var event kafka.OrderCreatedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return err
		}

		ordersPlaced.Inc()
		revenue.Add(event.Total)
		itemsSold.Add(float64(event.ItemCount))

		logger.Info(ctx).
			Str("order_number", event.OrderNumber).
			Float64("total", event.Total).
			Msg("Order placed")
		return nil
	})

	consumer.RegisterHandler(kafka.EventTypeOrderCancelled, func(ctx context.Context, payload []byte) error {
		var event kafka.OrderCancelledEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return err
		}

		ordersCancelled.Inc()

		logger.Info(ctx).
			Str("order_number", event.OrderNumber).
			Str("reason", event.Reason).
			Msg("Order cancelled")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	// Metrics endpoint
	httpPort := getEnv("HTTP_PORT", "8090")
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"healthy"}`))
		})

		logger.Logger.Info().Str("port", httpPort).Msg("Metrics server started")
		if err := http.ListenAndServe(":"+httpPort, nil); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down analytics consumer")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

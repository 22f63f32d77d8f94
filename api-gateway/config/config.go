package config

import (
	"os"
	"strings"
	"time"
)

// ServiceConfig holds configuration for a backend service
type ServiceConfig struct {
	Name        string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port     string
	Services map[string]ServiceConfig
}

// LoadConfig loads the gateway configuration. Every service routes to
// the storefront backend; instance lists are comma-separated env vars so
// a scaled-out deployment can balance across replicas.
func LoadConfig() *GatewayConfig {
	backend := getEnv("BACKEND_URL", "http://localhost:8080")

	return &GatewayConfig{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Services: map[string]ServiceConfig{
			"account": {
				Name:        "account-service",
				Instances:   getEnvList("ACCOUNT_SERVICE_URLS", backend),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
			"catalog": {
				Name:        "catalog-service",
				Instances:   getEnvList("CATALOG_SERVICE_URLS", backend),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
			"order": {
				Name:        "order-service",
				Instances:   getEnvList("ORDER_SERVICE_URLS", backend),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
			"content": {
				Name:        "content-service",
				Instances:   getEnvList("CONTENT_SERVICE_URLS", backend),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)

	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

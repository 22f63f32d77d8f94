package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/construmat/backend/api-gateway/config"
	"github.com/construmat/backend/api-gateway/health"
	"github.com/construmat/backend/api-gateway/middleware"
	"github.com/construmat/backend/api-gateway/proxy"
)

// RouteDefinition maps a path prefix onto a backend service.
type RouteDefinition struct {
	Prefix       string
	ServiceName  string
	Description  string
	RequireAuth  bool
	RequireAdmin bool
}

// Routes holds all route definitions. Catalog reads are public, the
// storefront works without a session until checkout.
var Routes = []RouteDefinition{
	{
		Prefix:      "/api/auth",
		ServiceName: "account",
		Description: "Registration and session endpoints",
	},
	{
		Prefix:      "/api/products",
		ServiceName: "catalog",
		Description: "Product catalog (public reads, admin writes enforced downstream)",
	},
	{
		Prefix:      "/api/categories",
		ServiceName: "catalog",
		Description: "Category tree (public reads, admin writes enforced downstream)",
	},
	{
		Prefix:      "/api/settings",
		ServiceName: "content",
		Description: "Store settings (public read, admin write enforced downstream)",
	},
	{
		Prefix:      "/api/orders",
		ServiceName: "order",
		Description: "Checkout and order history",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/users",
		ServiceName: "account",
		Description: "Profile and account administration",
		RequireAuth: true,
	},
	{
		Prefix:      "/uploads",
		ServiceName: "catalog",
		Description: "Product images served from object storage",
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, redisClient *redis.Client) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream probes)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	// Readiness probe (checks downstream services)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}
		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed service health
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		return c.JSON(healthChecker.CheckAllServices(ctx))
	})

	// Load balancer stats
	app.Get("/gateway/stats", func(c *fiber.Ctx) error {
		stats := fiber.Map{}
		for name, lb := range reverseProxy.LoadBalancers() {
			stats[name] = lb.Stats()
		}
		return c.JSON(stats)
	})

	// Gateway overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ConstruMat API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy, redisClient)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy, redisClient *redis.Client) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	var middlewares []fiber.Handler
	switch {
	case route.RequireAdmin:
		middlewares = append(middlewares, middleware.AuthMiddleware(), middleware.AdminMiddleware())
	case route.RequireAuth:
		middlewares = append(middlewares, middleware.AuthMiddleware())
	}

	// Authenticated traffic gets the per-user limit as well
	if route.RequireAuth && redisClient != nil {
		middlewares = append(middlewares, middleware.UserRateLimiter(redisClient))
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}

//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/mongo"

	httpDelivery "github.com/construmat/backend/internal/order/delivery/http"
	"github.com/construmat/backend/internal/order/domain"
	"github.com/construmat/backend/internal/order/repository"
	"github.com/construmat/backend/internal/order/usecase/command"
	"github.com/construmat/backend/internal/order/usecase/query"
	productdomain "github.com/construmat/backend/internal/product/domain"
	productrepo "github.com/construmat/backend/internal/product/repository"
	"github.com/construmat/backend/pkg/auth"
)

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *mongo.Database) domain.OrderRepository {
	return repository.NewMongoOrderRepository(db)
}

// ProvideProductRepository provides the product repository consumed by
// order creation for snapshots and stock checks.
func ProvideProductRepository(db *mongo.Database) productdomain.ProductRepository {
	return productrepo.NewMongoProductRepository(db)
}

// Command handler providers
func ProvideCreateOrderHandler(orders domain.OrderRepository, products productdomain.ProductRepository, publisher command.EventPublisher) *command.CreateOrderHandler {
	return command.NewCreateOrderHandler(orders, products, publisher)
}

func ProvideUpdateOrderHandler(orders domain.OrderRepository) *command.UpdateOrderHandler {
	return command.NewUpdateOrderHandler(orders)
}

func ProvideCancelOrderHandler(orders domain.OrderRepository, publisher command.EventPublisher) *command.CancelOrderHandler {
	return command.NewCancelOrderHandler(orders, publisher)
}

// Query handler providers
func ProvideGetOrderHandler(orders domain.OrderRepository) *query.GetOrderHandler {
	return query.NewGetOrderHandler(orders)
}

func ProvideListOrdersHandler(orders domain.OrderRepository) *query.ListOrdersHandler {
	return query.NewListOrdersHandler(orders)
}

func ProvideOrdersByUserHandler(orders domain.OrderRepository) *query.OrdersByUserHandler {
	return query.NewOrdersByUserHandler(orders)
}

func ProvideGetStatsHandler(orders domain.OrderRepository) *query.GetStatsHandler {
	return query.NewGetStatsHandler(orders)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
	ProvideProductRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateOrderHandler,
	ProvideUpdateOrderHandler,
	ProvideCancelOrderHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetOrderHandler,
	ProvideListOrdersHandler,
	ProvideOrdersByUserHandler,
	ProvideGetStatsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes the order HTTP handler with all
// dependencies.
func InitializeHTTPHandler(db *mongo.Database, publisher command.EventPublisher, denylist auth.Denylist) (*httpDelivery.OrderHandler, error) {
	wire.Build(
		AllHandlersSet,
		httpDelivery.NewOrderHandlerWithDI,
	)
	return nil, nil
}

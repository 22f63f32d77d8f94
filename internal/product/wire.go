//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/mongo"

	httpDelivery "github.com/construmat/backend/internal/product/delivery/http"
	"github.com/construmat/backend/internal/product/domain"
	"github.com/construmat/backend/internal/product/repository"
	"github.com/construmat/backend/internal/product/usecase/command"
	"github.com/construmat/backend/internal/product/usecase/query"
	"github.com/construmat/backend/pkg/auth"
	"github.com/construmat/backend/pkg/storage"
)

// ProvideProductRepository provides the product repository wrapped with
// the tracing decorator.
func ProvideProductRepository(db *mongo.Database) domain.ProductRepository {
	return repository.NewTracingProductRepository(repository.NewMongoProductRepository(db))
}

// Command handler providers
func ProvideCreateProductHandler(repo domain.ProductRepository, store storage.ObjectStorage) *command.CreateProductHandler {
	return command.NewCreateProductHandler(repo, store)
}

func ProvideUpdateProductHandler(repo domain.ProductRepository, store storage.ObjectStorage) *command.UpdateProductHandler {
	return command.NewUpdateProductHandler(repo, store)
}

func ProvideDeleteProductHandler(repo domain.ProductRepository, store storage.ObjectStorage) *command.DeleteProductHandler {
	return command.NewDeleteProductHandler(repo, store)
}

func ProvideUpdateStockHandler(repo domain.ProductRepository) *command.UpdateStockHandler {
	return command.NewUpdateStockHandler(repo)
}

// Query handler providers
func ProvideGetProductHandler(repo domain.ProductRepository) *query.GetProductHandler {
	return query.NewGetProductHandler(repo)
}

func ProvideListProductsHandler(repo domain.ProductRepository) *query.ListProductsHandler {
	return query.NewListProductsHandler(repo)
}

func ProvideSearchProductsHandler(repo domain.ProductRepository) *query.SearchProductsHandler {
	return query.NewSearchProductsHandler(repo)
}

func ProvideProductsByCategoryHandler(repo domain.ProductRepository) *query.ProductsByCategoryHandler {
	return query.NewProductsByCategoryHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateProductHandler,
	ProvideUpdateProductHandler,
	ProvideDeleteProductHandler,
	ProvideUpdateStockHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetProductHandler,
	ProvideListProductsHandler,
	ProvideSearchProductsHandler,
	ProvideProductsByCategoryHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes the product HTTP handler with all
// dependencies.
func InitializeHTTPHandler(db *mongo.Database, store storage.ObjectStorage, denylist auth.Denylist) (*httpDelivery.ProductHandler, error) {
	wire.Build(
		AllHandlersSet,
		httpDelivery.NewProductHandlerWithDI,
	)
	return nil, nil
}

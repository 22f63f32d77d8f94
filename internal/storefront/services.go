package storefront

import (
	"context"

	orderdomain "github.com/construmat/backend/internal/order/domain"
	ordercommand "github.com/construmat/backend/internal/order/usecase/command"
	orderquery "github.com/construmat/backend/internal/order/usecase/query"
	productdomain "github.com/construmat/backend/internal/product/domain"
	productquery "github.com/construmat/backend/internal/product/usecase/query"
	userdomain "github.com/construmat/backend/internal/user/domain"
	usercommand "github.com/construmat/backend/internal/user/usecase/command"
)

// The store depends on narrow views of the entity usecase handlers so
// tests can substitute fakes without a database.

type ProductLister interface {
	Handle(ctx context.Context, q productquery.ListProductsQuery) (*productdomain.Page, error)
}

type ProductSearcher interface {
	Handle(ctx context.Context, q productquery.SearchProductsQuery) ([]productdomain.Product, error)
}

type OrderPlacer interface {
	Handle(ctx context.Context, cmd ordercommand.CreateOrderCommand) (*orderdomain.Order, error)
}

type OrderCanceller interface {
	Handle(ctx context.Context, cmd ordercommand.CancelOrderCommand) (*orderdomain.Order, error)
}

type OrderHistory interface {
	Handle(ctx context.Context, q orderquery.OrdersByUserQuery) ([]orderdomain.Order, error)
}

type Registrar interface {
	Handle(ctx context.Context, cmd usercommand.RegisterUserCommand) (*userdomain.User, error)
}

type Authenticator interface {
	Handle(ctx context.Context, cmd usercommand.LoginUserCommand) (*usercommand.LoginResult, error)
}

type SessionRevoker interface {
	Handle(ctx context.Context, cmd usercommand.LogoutUserCommand) error
}

// Services bundles the entity services a store session needs.
type Services struct {
	ListProducts   ProductLister
	SearchProducts ProductSearcher
	PlaceOrder     OrderPlacer
	CancelOrder    OrderCanceller
	MyOrders       OrderHistory
	Register       Registrar
	Login          Authenticator
	Logout         SessionRevoker
}

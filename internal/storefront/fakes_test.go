package storefront

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	orderdomain "github.com/construmat/backend/internal/order/domain"
	ordercommand "github.com/construmat/backend/internal/order/usecase/command"
	orderquery "github.com/construmat/backend/internal/order/usecase/query"
	productdomain "github.com/construmat/backend/internal/product/domain"
	productquery "github.com/construmat/backend/internal/product/usecase/query"
	userdomain "github.com/construmat/backend/internal/user/domain"
	usercommand "github.com/construmat/backend/internal/user/usecase/command"
)

type fakeLister struct {
	pages   map[string]*productdomain.Page
	failMsg string
}

func (f *fakeLister) Handle(_ context.Context, q productquery.ListProductsQuery) (*productdomain.Page, error) {
	if f.failMsg != "" {
		return nil, fmt.Errorf("%s", f.failMsg)
	}
	page, ok := f.pages[q.Cursor]
	if !ok {
		return &productdomain.Page{}, nil
	}
	return page, nil
}

type fakeSearcher struct {
	results []productdomain.Product
}

func (f *fakeSearcher) Handle(_ context.Context, _ productquery.SearchProductsQuery) ([]productdomain.Product, error) {
	return f.results, nil
}

type fakePlacer struct {
	mu      sync.Mutex
	order   *orderdomain.Order
	failMsg string
	lastCmd ordercommand.CreateOrderCommand
}

func (f *fakePlacer) Handle(_ context.Context, cmd ordercommand.CreateOrderCommand) (*orderdomain.Order, error) {
	f.mu.Lock()
	f.lastCmd = cmd
	f.mu.Unlock()
	if f.failMsg != "" {
		return nil, fmt.Errorf("%s", f.failMsg)
	}
	copied := *f.order
	return &copied, nil
}

func (f *fakePlacer) last() ordercommand.CreateOrderCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastCmd
}

type fakeCanceller struct {
	order   *orderdomain.Order
	failMsg string
}

func (f *fakeCanceller) Handle(_ context.Context, _ ordercommand.CancelOrderCommand) (*orderdomain.Order, error) {
	if f.failMsg != "" {
		return nil, fmt.Errorf("%s", f.failMsg)
	}
	copied := *f.order
	return &copied, nil
}

type fakeHistory struct {
	orders []orderdomain.Order
}

func (f *fakeHistory) Handle(_ context.Context, _ orderquery.OrdersByUserQuery) ([]orderdomain.Order, error) {
	return append([]orderdomain.Order(nil), f.orders...), nil
}

type fakeRegistrar struct {
	failMsg string
}

func (f *fakeRegistrar) Handle(_ context.Context, cmd usercommand.RegisterUserCommand) (*userdomain.User, error) {
	if f.failMsg != "" {
		return nil, fmt.Errorf("%s", f.failMsg)
	}
	return &userdomain.User{
		ID:    primitive.NewObjectID(),
		Name:  cmd.Name,
		Email: cmd.Email,
		Role:  userdomain.RoleCustomer,
	}, nil
}

type fakeAuthenticator struct {
	user    *userdomain.User
	token   string
	failMsg string
	block   chan struct{}
}

func (f *fakeAuthenticator) Handle(_ context.Context, _ usercommand.LoginUserCommand) (*usercommand.LoginResult, error) {
	if f.block != nil {
		<-f.block
	}
	if f.failMsg != "" {
		return nil, fmt.Errorf("%s", f.failMsg)
	}
	return &usercommand.LoginResult{Token: f.token, User: f.user}, nil
}

type fakeRevoker struct {
	mu     sync.Mutex
	tokens []string
}

func (f *fakeRevoker) Handle(_ context.Context, cmd usercommand.LogoutUserCommand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, cmd.Token)
	return nil
}

func testUser() *userdomain.User {
	return &userdomain.User{
		ID:    primitive.NewObjectID(),
		Name:  "Ana Pop",
		Email: "ana@example.com",
		Role:  userdomain.RoleCustomer,
	}
}

func testServices() Services {
	return Services{
		ListProducts:   &fakeLister{},
		SearchProducts: &fakeSearcher{},
		PlaceOrder:     &fakePlacer{order: &orderdomain.Order{}},
		CancelOrder:    &fakeCanceller{order: &orderdomain.Order{}},
		MyOrders:       &fakeHistory{},
		Register:       &fakeRegistrar{},
		Login:          &fakeAuthenticator{user: testUser(), token: "tok"},
		Logout:         &fakeRevoker{},
	}
}

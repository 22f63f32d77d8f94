//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/mongo"

	httpDelivery "github.com/construmat/backend/internal/user/delivery/http"
	"github.com/construmat/backend/internal/user/domain"
	"github.com/construmat/backend/internal/user/repository"
	"github.com/construmat/backend/internal/user/usecase/command"
	"github.com/construmat/backend/internal/user/usecase/query"
	"github.com/construmat/backend/pkg/auth"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *mongo.Database) domain.UserRepository {
	return repository.NewMongoUserRepository(db)
}

// Command handler providers
func ProvideRegisterUserHandler(repo domain.UserRepository) *command.RegisterUserHandler {
	return command.NewRegisterUserHandler(repo)
}

func ProvideLoginUserHandler(repo domain.UserRepository) *command.LoginUserHandler {
	return command.NewLoginUserHandler(repo)
}

func ProvideLogoutUserHandler(denylist auth.Denylist) *command.LogoutUserHandler {
	return command.NewLogoutUserHandler(denylist)
}

func ProvideUpdateUserHandler(repo domain.UserRepository) *command.UpdateUserHandler {
	return command.NewUpdateUserHandler(repo)
}

func ProvideChangeRoleHandler(repo domain.UserRepository) *command.ChangeRoleHandler {
	return command.NewChangeRoleHandler(repo)
}

func ProvideDeleteUserHandler(repo domain.UserRepository) *command.DeleteUserHandler {
	return command.NewDeleteUserHandler(repo)
}

// Query handler providers
func ProvideGetUserHandler(repo domain.UserRepository) *query.GetUserHandler {
	return query.NewGetUserHandler(repo)
}

func ProvideListUsersHandler(repo domain.UserRepository) *query.ListUsersHandler {
	return query.NewListUsersHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideRegisterUserHandler,
	ProvideLoginUserHandler,
	ProvideLogoutUserHandler,
	ProvideUpdateUserHandler,
	ProvideChangeRoleHandler,
	ProvideDeleteUserHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetUserHandler,
	ProvideListUsersHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes the user HTTP handler with all
// dependencies.
func InitializeHTTPHandler(db *mongo.Database, denylist auth.Denylist) (*httpDelivery.UserHandler, error) {
	wire.Build(
		AllHandlersSet,
		httpDelivery.NewUserHandlerWithDI,
	)
	return nil, nil
}

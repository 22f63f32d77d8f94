package storefront

import (
	"context"

	userdomain "github.com/construmat/backend/internal/user/domain"
	usercommand "github.com/construmat/backend/internal/user/usecase/command"
)

// sessionUserFrom adapts the entity-service user to the single identity
// shape the store exposes.
func sessionUserFrom(u *userdomain.User) *SessionUser {
	if u == nil {
		return nil
	}
	return &SessionUser{
		UID:         u.UID(),
		Email:       u.Email,
		DisplayName: u.Name,
		Role:        u.Role,
	}
}

// SignIn starts an asynchronous sign-in. The auth slice goes pending
// immediately; the outcome lands whenever the call returns. A racing
// second call is not fenced, the later result wins.
func (s *Store) SignIn(ctx context.Context, email, password string) {
	s.mu.Lock()
	s.auth.Loading = true
	s.auth.Error = ""
	s.notifyLocked()
	s.mu.Unlock()

	go func() {
		result, err := s.services.Login.Handle(ctx, usercommand.LoginUserCommand{
			Email:    email,
			Password: password,
		})

		var user *SessionUser

		s.mu.Lock()
		s.auth.Loading = false
		if err != nil {
			s.auth.Error = err.Error()
		} else {
			user = sessionUserFrom(result.User)
			s.auth.User = user
			s.auth.Token = result.Token
		}
		s.notifyLocked()
		s.mu.Unlock()

		if err == nil {
			s.fireSessionChange(user)
		}
	}()
}

// SignUp starts an asynchronous registration followed by a sign-in with
// the same credentials, matching the storefront's register-then-enter
// flow.
func (s *Store) SignUp(ctx context.Context, name, email, password string) {
	s.mu.Lock()
	s.auth.Loading = true
	s.auth.Error = ""
	s.notifyLocked()
	s.mu.Unlock()

	go func() {
		_, err := s.services.Register.Handle(ctx, usercommand.RegisterUserCommand{
			Name:     name,
			Email:    email,
			Password: password,
		})
		if err != nil {
			s.mu.Lock()
			s.auth.Loading = false
			s.auth.Error = err.Error()
			s.notifyLocked()
			s.mu.Unlock()
			return
		}

		result, err := s.services.Login.Handle(ctx, usercommand.LoginUserCommand{
			Email:    email,
			Password: password,
		})

		var user *SessionUser

		s.mu.Lock()
		s.auth.Loading = false
		if err != nil {
			s.auth.Error = err.Error()
		} else {
			user = sessionUserFrom(result.User)
			s.auth.User = user
			s.auth.Token = result.Token
		}
		s.notifyLocked()
		s.mu.Unlock()

		if err == nil {
			s.fireSessionChange(user)
		}
	}()
}

// SignOut starts an asynchronous sign-out. The local session is dropped
// whether or not the revocation call succeeds; a failed revocation only
// leaves the error message behind.
func (s *Store) SignOut(ctx context.Context) {
	s.mu.Lock()
	token := s.auth.Token
	s.auth.Loading = true
	s.auth.Error = ""
	s.notifyLocked()
	s.mu.Unlock()

	go func() {
		var err error
		if token != "" {
			err = s.services.Logout.Handle(ctx, usercommand.LogoutUserCommand{Token: token})
		}

		s.mu.Lock()
		s.auth.Loading = false
		s.auth.User = nil
		s.auth.Token = ""
		if err != nil {
			s.auth.Error = err.Error()
		}
		s.clearCartLocked()
		s.orders = OrdersSlice{}
		s.notifyLocked()
		s.mu.Unlock()

		s.fireSessionChange(nil)
	}()
}

package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role types
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Address is one saved delivery address of a customer profile.
type Address struct {
	Label      string `bson:"label,omitempty" json:"label,omitempty"`
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	County     string `bson:"county,omitempty" json:"county,omitempty"`
	PostalCode string `bson:"postal_code" json:"postal_code"`
	Country    string `bson:"country" json:"country"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
	IsDefault  bool   `bson:"is_default" json:"is_default"`
}

// Preferences holds per-customer settings.
type Preferences struct {
	Newsletter bool   `bson:"newsletter" json:"newsletter"`
	Language   string `bson:"language,omitempty" json:"language,omitempty"`
}

// User is the profile read model stored in the users collection. The
// session token carries a slimmer shape (uid, email, name, role) keyed by
// the same id; the two are reconciled only at the session boundary.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Role        string             `bson:"role" json:"role"`
	Addresses   []Address          `bson:"addresses,omitempty" json:"addresses,omitempty"`
	Preferences Preferences        `bson:"preferences" json:"preferences"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// UID returns the opaque identity string exposed to the rest of the
// system.
func (u *User) UID() string {
	return u.ID.Hex()
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserRepository defines the contract for user data access. Single
// lookups return (nil, nil) on absence.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, limit, offset int) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

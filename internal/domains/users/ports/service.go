package ports

import (
	"context"

	"github.com/galeria/marketplace-api/internal/domains/users/domain"
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Login(ctx context.Context, nick, password string) (string, error)
	Logout(ctx context.Context, token string)
	// Authenticate resolves a bearer token to the owning principal id.
	Authenticate(ctx context.Context, token string) (int64, error)
	// RoleOf performs a fresh role lookup; authorization never trusts stale claims.
	RoleOf(ctx context.Context, userID int64) (domain.Role, error)
}

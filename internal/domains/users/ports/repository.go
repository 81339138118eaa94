package ports

import (
	"context"
	"errors"

	"github.com/galeria/marketplace-api/internal/domains/users/domain"
)

var ErrNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid nick or password")

type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByNick(ctx context.Context, nick string) (*domain.User, error)
	List(ctx context.Context, role domain.Role) ([]*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

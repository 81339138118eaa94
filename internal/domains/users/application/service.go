package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/galeria/marketplace-api/internal/domains/users/domain"
	"github.com/galeria/marketplace-api/internal/domains/users/ports"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
}

func NewService(repo ports.Repository, sessions ports.SessionStore) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	return &Service{repo: repo, sessions: sessions}
}

func (s *Service) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Login(ctx context.Context, nick, password string) (string, error) {
	nick = strings.TrimSpace(nick)
	if nick == "" || strings.TrimSpace(password) == "" {
		return "", ports.ErrInvalidCredentials
	}
	user, err := s.repo.GetByNick(ctx, nick)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", ports.ErrInvalidCredentials
		}
		return "", err
	}
	if !user.CheckPassword(password) {
		return "", ports.ErrInvalidCredentials
	}
	token := uuid.NewString()
	if err := s.sessions.Save(ctx, token, user.ID); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) Logout(ctx context.Context, token string) {
	if strings.TrimSpace(token) == "" {
		return
	}
	_ = s.sessions.Delete(ctx, token)
}

func (s *Service) Authenticate(ctx context.Context, token string) (int64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, ports.ErrSessionNotFound
	}
	return s.sessions.Lookup(ctx, token)
}

// RoleOf resolves the caller's current role with a fresh repository lookup.
func (s *Service) RoleOf(ctx context.Context, userID int64) (domain.Role, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// IsAdmin reports whether the principal currently holds the elevated role.
func (s *Service) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	role, err := s.RoleOf(ctx, userID)
	if err != nil {
		return false, err
	}
	return role == domain.RoleAdmin, nil
}

// CanSell reports whether the principal may currently list artworks.
func (s *Service) CanSell(ctx context.Context, userID int64) (bool, error) {
	role, err := s.RoleOf(ctx, userID)
	if err != nil {
		return false, err
	}
	return role == domain.RoleArtist || role == domain.RoleAdmin, nil
}

var _ ports.Service = (*Service)(nil)

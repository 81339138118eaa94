package application

import (
	"context"
	"errors"

	"github.com/galeria/marketplace-api/internal/domains/artworks/domain"
	"github.com/galeria/marketplace-api/internal/domains/artworks/ports"
)

// Service orchestrates artwork catalog use cases.
type Service struct {
	repo      ports.Repository
	directory ports.Directory
}

func NewService(repo ports.Repository, directory ports.Directory) *Service {
	return &Service{repo: repo, directory: directory}
}

// Create lists a new piece. Only artists and administrators may sell.
func (s *Service) Create(ctx context.Context, callerID int64, artwork *domain.Artwork) (*domain.Artwork, error) {
	if artwork == nil {
		return nil, errors.New("artwork is nil")
	}
	canSell, err := s.directory.CanSell(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !canSell {
		return nil, ErrNotAllowed
	}
	artwork.AuthorID = callerID
	artwork.Active = true
	if err := artwork.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, artwork)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Artwork, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ports.Filter) ([]*domain.Artwork, error) {
	return s.repo.List(ctx, filter)
}

// Deactivate hides a piece from purchase. Allowed for the owner or an administrator.
func (s *Service) Deactivate(ctx context.Context, callerID, id int64) error {
	artwork, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if artwork.AuthorID != callerID {
		admin, err := s.directory.IsAdmin(ctx, callerID)
		if err != nil {
			return err
		}
		if !admin {
			return ErrNotAllowed
		}
	}
	return s.repo.SetActive(ctx, id, false)
}

// Activate restores a piece. Administrators only.
func (s *Service) Activate(ctx context.Context, callerID, id int64) error {
	admin, err := s.directory.IsAdmin(ctx, callerID)
	if err != nil {
		return err
	}
	if !admin {
		return ErrNotAllowed
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActive(ctx, id, true)
}

var _ ports.Service = (*Service)(nil)

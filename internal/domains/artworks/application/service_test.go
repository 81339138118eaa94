package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galeria/marketplace-api/internal/domains/artworks/adapters/memory"
	"github.com/galeria/marketplace-api/internal/domains/artworks/domain"
)

type fakeDirectory struct {
	admins  map[int64]bool
	sellers map[int64]bool
}

func (f *fakeDirectory) IsAdmin(_ context.Context, userID int64) (bool, error) {
	return f.admins[userID], nil
}

func (f *fakeDirectory) CanSell(_ context.Context, userID int64) (bool, error) {
	return f.sellers[userID] || f.admins[userID], nil
}

func newTestService() (*Service, *memory.Repository, *fakeDirectory) {
	repo := memory.NewRepository()
	directory := &fakeDirectory{admins: map[int64]bool{}, sellers: map[int64]bool{}}
	return NewService(repo, directory), repo, directory
}

func TestCreate_ArtistOnly(t *testing.T) {
	svc, _, directory := newTestService()
	directory.sellers[7] = true

	artwork := &domain.Artwork{Title: "Nocturne", Price: 120, Quantity: 3}
	saved, err := svc.Create(context.Background(), 7, artwork)
	require.NoError(t, err)
	require.Equal(t, int64(7), saved.AuthorID)
	require.True(t, saved.Active)

	_, err = svc.Create(context.Background(), 8, &domain.Artwork{Title: "Copy", Price: 10, Quantity: 1})
	require.ErrorIs(t, err, ErrNotAllowed)
}

func TestCreate_RejectsInvalidPrice(t *testing.T) {
	svc, _, directory := newTestService()
	directory.sellers[7] = true

	_, err := svc.Create(context.Background(), 7, &domain.Artwork{Title: "Free", Price: 0, Quantity: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeactivate_OwnerOrAdmin(t *testing.T) {
	svc, repo, directory := newTestService()
	directory.sellers[7] = true
	directory.admins[1] = true

	saved, err := svc.Create(context.Background(), 7, &domain.Artwork{Title: "Nocturne", Price: 120, Quantity: 3})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Deactivate(context.Background(), 9, saved.ID), ErrNotAllowed)
	require.NoError(t, svc.Deactivate(context.Background(), 7, saved.ID))

	got, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	require.False(t, got.Active)

	// Reactivation is reserved for administrators.
	require.ErrorIs(t, svc.Activate(context.Background(), 7, saved.ID), ErrNotAllowed)
	require.NoError(t, svc.Activate(context.Background(), 1, saved.ID))
}

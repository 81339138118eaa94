package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galeria/marketplace-api/internal/domains/users/adapters/memory"
	"github.com/galeria/marketplace-api/internal/domains/users/domain"
	"github.com/galeria/marketplace-api/internal/domains/users/ports"
)

func newTestService() (*Service, *memory.Repository) {
	repo := memory.NewRepository()
	return NewService(repo, memory.NewSessionStore()), repo
}

func seedUser(t *testing.T, repo *memory.Repository, nick string, role domain.Role) *domain.User {
	t.Helper()
	user, err := domain.NewUser(0, nick, nick+"@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, user.SetRole(role))
	saved, err := repo.Save(context.Background(), user)
	require.NoError(t, err)
	return saved
}

func TestRegister_ValidatesAndPersists(t *testing.T) {
	svc, _ := newTestService()

	user, err := domain.NewUser(0, "ana", "ana@example.com", "secret")
	require.NoError(t, err)

	saved, err := svc.Register(context.Background(), user)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	require.Equal(t, domain.RoleUser, saved.Role)
}

func TestRegister_RejectsWeakPassword(t *testing.T) {
	svc, _ := newTestService()

	user := &domain.User{Nick: "ana", Password: "abc"}
	_, err := svc.Register(context.Background(), user)
	require.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestLogin_IssuesResolvableToken(t *testing.T) {
	svc, repo := newTestService()
	saved := seedUser(t, repo, "ana", domain.RoleUser)

	token, err := svc.Login(context.Background(), "ana", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, saved.ID, userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := newTestService()
	seedUser(t, repo, "ana", domain.RoleUser)

	_, err := svc.Login(context.Background(), "ana", "nope")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLogin_UnknownNick(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), "ghost", "secret")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, repo := newTestService()
	seedUser(t, repo, "ana", domain.RoleUser)

	token, err := svc.Login(context.Background(), "ana", "secret")
	require.NoError(t, err)

	svc.Logout(context.Background(), token)
	_, err = svc.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestRoleOf_FreshLookup(t *testing.T) {
	svc, repo := newTestService()
	saved := seedUser(t, repo, "ana", domain.RoleUser)

	role, err := svc.RoleOf(context.Background(), saved.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, role)

	// Promote the user behind the session's back; the next lookup must see it.
	require.NoError(t, saved.SetRole(domain.RoleAdmin))
	_, err = repo.Save(context.Background(), saved)
	require.NoError(t, err)

	admin, err := svc.IsAdmin(context.Background(), saved.ID)
	require.NoError(t, err)
	require.True(t, admin)
}

func TestCanSell_ByRole(t *testing.T) {
	svc, repo := newTestService()
	buyer := seedUser(t, repo, "buyer", domain.RoleUser)
	artist := seedUser(t, repo, "artist", domain.RoleArtist)

	ok, err := svc.CanSell(context.Background(), buyer.ID)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.CanSell(context.Background(), artist.ID)
	require.NoError(t, err)
	require.True(t, ok)
}

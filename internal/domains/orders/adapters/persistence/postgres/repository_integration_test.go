//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	artworkspostgres "github.com/galeria/marketplace-api/internal/domains/artworks/adapters/persistence/postgres"
	artworksdomain "github.com/galeria/marketplace-api/internal/domains/artworks/domain"
	"github.com/galeria/marketplace-api/internal/domains/orders/domain"
	"github.com/galeria/marketplace-api/internal/domains/orders/ports"
	userspostgres "github.com/galeria/marketplace-api/internal/domains/users/adapters/persistence/postgres"
	usersdomain "github.com/galeria/marketplace-api/internal/domains/users/domain"
	"github.com/galeria/marketplace-api/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("galeria_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedBuyer(t *testing.T, db *gorm.DB) *usersdomain.User {
	t.Helper()
	saved, err := userspostgres.NewRepository(db).Save(context.Background(), &usersdomain.User{
		DNI:      "11111111A",
		Name:     "Lucia",
		LastName: "Prado",
		Nick:     "lucia",
		Email:    "lucia@example.com",
		Password: "secret",
		Role:     usersdomain.RoleUser,
		Active:   true,
	})
	require.NoError(t, err)
	return saved
}

func seedArtwork(t *testing.T, db *gorm.DB, title string, price float64, quantity int) *artworksdomain.Artwork {
	t.Helper()
	saved, err := artworkspostgres.NewRepository(db).Save(context.Background(), &artworksdomain.Artwork{
		AuthorID: 99,
		Title:    title,
		Price:    price,
		Quantity: quantity,
		Active:   true,
	})
	require.NoError(t, err)
	return saved
}

func artworkQuantity(t *testing.T, db *gorm.DB, id int64) int {
	t.Helper()
	artwork, err := artworkspostgres.NewRepository(db).GetByID(context.Background(), id)
	require.NoError(t, err)
	return artwork.Quantity
}

func TestRepository_PlaceComputesTotalsAndDecrementsStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	buyer := seedBuyer(t, db)
	a := seedArtwork(t, db, "Lienzo A", 10, 5)
	b := seedArtwork(t, db, "Lienzo B", 5, 1)

	order, err := repo.Place(ctx, buyer.ID, []domain.LineRequest{
		{ArtworkID: a.ID, Quantity: 2},
		{ArtworkID: b.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.InDelta(t, 25.0, order.Total, 0.001)
	require.Len(t, order.Lines, 2)
	assert.InDelta(t, 10.0, order.Lines[0].UnitPrice, 0.001)
	assert.InDelta(t, 20.0, order.Lines[0].Subtotal, 0.001)
	require.NotNil(t, order.Lines[0].Artwork)
	assert.Equal(t, "Lienzo A", order.Lines[0].Artwork.Title)
	require.NotNil(t, order.Owner)
	assert.Equal(t, "Lucia Prado", order.Owner.Name)

	assert.Equal(t, 3, artworkQuantity(t, db, a.ID))
	assert.Equal(t, 0, artworkQuantity(t, db, b.ID))
}

func TestRepository_PlaceInsufficientStockRollsBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	buyer := seedBuyer(t, db)
	a := seedArtwork(t, db, "Lienzo A", 10, 5)
	b := seedArtwork(t, db, "Lienzo B", 5, 1)

	_, err := repo.Place(ctx, buyer.ID, []domain.LineRequest{
		{ArtworkID: a.ID, Quantity: 2},
		{ArtworkID: b.ID, Quantity: 2},
	})
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	assert.Equal(t, 5, artworkQuantity(t, db, a.ID))
	assert.Equal(t, 1, artworkQuantity(t, db, b.ID))

	orders, err := repo.ListByOwner(ctx, buyer.ID, "")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestRepository_PlaceRejectsInactiveArtwork(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	buyer := seedBuyer(t, db)
	a := seedArtwork(t, db, "Lienzo A", 10, 5)
	require.NoError(t, artworkspostgres.NewRepository(db).SetActive(ctx, a.ID, false))

	_, err := repo.Place(ctx, buyer.ID, []domain.LineRequest{{ArtworkID: a.ID, Quantity: 1}})
	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	assert.Equal(t, 5, artworkQuantity(t, db, a.ID))
}

func TestRepository_CompleteGuardsState(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	buyer := seedBuyer(t, db)
	a := seedArtwork(t, db, "Lienzo A", 10, 5)

	order, err := repo.Place(ctx, buyer.ID, []domain.LineRequest{{ArtworkID: a.ID, Quantity: 1}})
	require.NoError(t, err)

	completed, err := repo.Complete(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, completed.Status)
	// Completion delivers the goods; stock stays reserved.
	assert.Equal(t, 4, artworkQuantity(t, db, a.ID))

	_, err = repo.Complete(ctx, order.ID)
	assert.ErrorIs(t, err, ports.ErrInvalidState)

	_, err = repo.Complete(ctx, 9999)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_CancelRestoresStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	buyer := seedBuyer(t, db)
	a := seedArtwork(t, db, "Lienzo A", 10, 5)

	order, err := repo.Place(ctx, buyer.ID, []domain.LineRequest{{ArtworkID: a.ID, Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, artworkQuantity(t, db, a.ID))

	require.NoError(t, repo.Cancel(ctx, order.ID))
	assert.Equal(t, 5, artworkQuantity(t, db, a.ID))

	_, err = repo.GetByID(ctx, order.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	assert.ErrorIs(t, repo.Cancel(ctx, order.ID), ports.ErrNotFound)
}

func TestRepository_CancelRejectsCompletedOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	buyer := seedBuyer(t, db)
	a := seedArtwork(t, db, "Lienzo A", 10, 5)

	order, err := repo.Place(ctx, buyer.ID, []domain.LineRequest{{ArtworkID: a.ID, Quantity: 2}})
	require.NoError(t, err)
	_, err = repo.Complete(ctx, order.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Cancel(ctx, order.ID), ports.ErrInvalidState)
	assert.Equal(t, 3, artworkQuantity(t, db, a.ID))
}

func TestRepository_ListPage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	buyer := seedBuyer(t, db)
	a := seedArtwork(t, db, "Lienzo A", 10, 50)

	for i := 0; i < 3; i++ {
		_, err := repo.Place(ctx, buyer.ID, []domain.LineRequest{{ArtworkID: a.ID, Quantity: 1}})
		require.NoError(t, err)
	}

	orders, total, err := repo.ListPage(ctx, ports.AdminFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 2)

	orders, total, err = repo.ListPage(ctx, ports.AdminFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 1)

	orders, _, err = repo.ListPage(ctx, ports.AdminFilter{Page: 1, Limit: 10, Status: domain.StatusCompleted})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestRepository_ConcurrentPlacementNeverOversells(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	buyer := seedBuyer(t, db)
	a := seedArtwork(t, db, "Unica", 100, 1)

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Place(ctx, buyer.ID, []domain.LineRequest{{ArtworkID: a.ID, Quantity: 1}})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ports.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 0, artworkQuantity(t, db, a.ID))
}

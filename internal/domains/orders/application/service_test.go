package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	artworksmemory "github.com/galeria/marketplace-api/internal/domains/artworks/adapters/memory"
	artworksdomain "github.com/galeria/marketplace-api/internal/domains/artworks/domain"
	"github.com/galeria/marketplace-api/internal/domains/orders/adapters/memory"
	"github.com/galeria/marketplace-api/internal/domains/orders/domain"
	"github.com/galeria/marketplace-api/internal/domains/orders/ports"
)

type fakeDirectory struct {
	admins map[int64]bool
}

func (f *fakeDirectory) IsAdmin(_ context.Context, userID int64) (bool, error) {
	return f.admins[userID], nil
}

type recordingEvents struct {
	placed    []int64
	completed []int64
	cancelled []int64
}

func (r *recordingEvents) OrderPlaced(_ context.Context, o *domain.Order) {
	r.placed = append(r.placed, o.ID)
}

func (r *recordingEvents) OrderCompleted(_ context.Context, o *domain.Order) {
	r.completed = append(r.completed, o.ID)
}

func (r *recordingEvents) OrderCancelled(_ context.Context, o *domain.Order) {
	r.cancelled = append(r.cancelled, o.ID)
}

type fixture struct {
	svc     *Service
	catalog *artworksmemory.Repository
	events  *recordingEvents
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog := artworksmemory.NewRepository()
	events := &recordingEvents{}
	repo := memory.NewRepository(catalog)
	directory := &fakeDirectory{admins: map[int64]bool{1: true}}
	return &fixture{
		svc:     NewService(repo, directory, events),
		catalog: catalog,
		events:  events,
	}
}

func (f *fixture) seedArtwork(t *testing.T, title string, price float64, quantity int) *artworksdomain.Artwork {
	t.Helper()
	saved, err := f.catalog.Save(context.Background(), &artworksdomain.Artwork{
		AuthorID: 2,
		Title:    title,
		Price:    price,
		Quantity: quantity,
		Active:   true,
	})
	require.NoError(t, err)
	return saved
}

func (f *fixture) stockOf(t *testing.T, id int64) int {
	t.Helper()
	artwork, err := f.catalog.GetByID(context.Background(), id)
	require.NoError(t, err)
	return artwork.Quantity
}

func TestPlaceOrder_ReservesStockAndComputesTotal(t *testing.T) {
	f := newFixture(t)
	a := f.seedArtwork(t, "Lienzo A", 10, 5)
	b := f.seedArtwork(t, "Lienzo B", 5, 1)

	order, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID: 3,
		Lines: []domain.LineRequest{
			{ArtworkID: a.ID, Quantity: 2},
			{ArtworkID: b.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, order.Status)
	require.InDelta(t, 25.0, order.Total, 0.001)
	require.Len(t, order.Lines, 2)
	require.InDelta(t, 10.0, order.Lines[0].UnitPrice, 0.001)
	require.InDelta(t, 20.0, order.Lines[0].Subtotal, 0.001)
	require.Equal(t, 3, f.stockOf(t, a.ID))
	require.Equal(t, 0, f.stockOf(t, b.ID))
	require.Equal(t, []int64{order.ID}, f.events.placed)
}

func TestPlaceOrder_InsufficientStockLeavesEverythingUntouched(t *testing.T) {
	f := newFixture(t)
	a := f.seedArtwork(t, "Lienzo A", 10, 5)
	b := f.seedArtwork(t, "Lienzo B", 5, 1)

	_, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID: 3,
		Lines: []domain.LineRequest{
			{ArtworkID: a.ID, Quantity: 2},
			{ArtworkID: b.ID, Quantity: 2},
		},
	})
	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	require.Equal(t, 5, f.stockOf(t, a.ID))
	require.Equal(t, 1, f.stockOf(t, b.ID))

	orders, err := f.svc.ListOwn(context.Background(), 3, "")
	require.NoError(t, err)
	require.Empty(t, orders)
	require.Empty(t, f.events.placed)
}

func TestPlaceOrder_RejectsEmptyAndInvalidLines(t *testing.T) {
	f := newFixture(t)
	a := f.seedArtwork(t, "Lienzo A", 10, 5)

	_, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{UserID: 3})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID: 3,
		Lines:  []domain.LineRequest{{ArtworkID: a.ID, Quantity: 0}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Equal(t, 5, f.stockOf(t, a.ID))
}

func TestPlaceOrder_RejectsInactiveArtwork(t *testing.T) {
	f := newFixture(t)
	a := f.seedArtwork(t, "Lienzo A", 10, 5)
	require.NoError(t, f.catalog.SetActive(context.Background(), a.ID, false))

	_, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID: 3,
		Lines:  []domain.LineRequest{{ArtworkID: a.ID, Quantity: 1}},
	})
	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	require.Equal(t, 5, f.stockOf(t, a.ID))
}

func TestGetByID_OwnerOrAdminOnly(t *testing.T) {
	f := newFixture(t)
	a := f.seedArtwork(t, "Lienzo A", 10, 5)
	order := f.place(t, 3, a.ID, 1)

	_, err := f.svc.GetByID(context.Background(), 3, order.ID)
	require.NoError(t, err)
	_, err = f.svc.GetByID(context.Background(), 1, order.ID)
	require.NoError(t, err)
	_, err = f.svc.GetByID(context.Background(), 4, order.ID)
	require.ErrorIs(t, err, ErrNotAllowed)
}

func TestListOwn_FiltersByStatus(t *testing.T) {
	f := newFixture(t)
	a := f.seedArtwork(t, "Lienzo A", 10, 5)
	first := f.place(t, 3, a.ID, 1)
	f.place(t, 3, a.ID, 1)

	_, err := f.svc.Complete(context.Background(), 1, first.ID)
	require.NoError(t, err)

	pending, err := f.svc.ListOwn(context.Background(), 3, domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	completed, err := f.svc.ListOwn(context.Background(), 3, domain.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	require.Equal(t, first.ID, completed[0].ID)

	_, err = f.svc.ListOwn(context.Background(), 3, domain.Status("shipped"))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListAll_AdminOnlyAndPaged(t *testing.T) {
	f := newFixture(t)
	a := f.seedArtwork(t, "Lienzo A", 10, 50)
	for i := 0; i < 3; i++ {
		f.place(t, 3, a.ID, 1)
	}

	_, err := f.svc.ListAll(context.Background(), ports.AdminListInput{CallerID: 3})
	require.ErrorIs(t, err, ErrNotAllowed)

	page, err := f.svc.ListAll(context.Background(), ports.AdminListInput{CallerID: 1, Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), page.Total)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Orders, 2)

	page, err = f.svc.ListAll(context.Background(), ports.AdminListInput{CallerID: 1, Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
}

func TestComplete_AdminOnlyPendingOnly(t *testing.T) {
	f := newFixture(t)
	a := f.seedArtwork(t, "Lienzo A", 10, 5)
	order := f.place(t, 3, a.ID, 2)

	_, err := f.svc.Complete(context.Background(), 3, order.ID)
	require.ErrorIs(t, err, ErrNotAllowed)

	completed, err := f.svc.Complete(context.Background(), 1, order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, completed.Status)
	// Completion delivers the goods; stock stays reserved.
	require.Equal(t, 3, f.stockOf(t, a.ID))
	require.Equal(t, []int64{order.ID}, f.events.completed)

	_, err = f.svc.Complete(context.Background(), 1, order.ID)
	require.ErrorIs(t, err, ports.ErrInvalidState)

	_, err = f.svc.Complete(context.Background(), 1, 999)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCancel_RestoresStock(t *testing.T) {
	f := newFixture(t)
	a := f.seedArtwork(t, "Lienzo A", 10, 5)
	b := f.seedArtwork(t, "Lienzo B", 5, 1)
	order := f.place(t, 3, a.ID, 2)
	other := f.place(t, 3, b.ID, 1)

	require.ErrorIs(t, f.svc.Cancel(context.Background(), 4, order.ID), ErrNotAllowed)

	require.NoError(t, f.svc.Cancel(context.Background(), 3, order.ID))
	require.Equal(t, 5, f.stockOf(t, a.ID))
	_, err := f.svc.GetByID(context.Background(), 3, order.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.Equal(t, []int64{order.ID}, f.events.cancelled)

	// Administrators may cancel on the buyer's behalf.
	require.NoError(t, f.svc.Cancel(context.Background(), 1, other.ID))
	require.Equal(t, 1, f.stockOf(t, b.ID))
}

func TestCancel_CompletedOrderIsFinal(t *testing.T) {
	f := newFixture(t)
	a := f.seedArtwork(t, "Lienzo A", 10, 5)
	order := f.place(t, 3, a.ID, 2)

	_, err := f.svc.Complete(context.Background(), 1, order.ID)
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.Cancel(context.Background(), 3, order.ID), ports.ErrInvalidState)
	require.Equal(t, 3, f.stockOf(t, a.ID))
}

func (f *fixture) place(t *testing.T, userID, artworkID int64, quantity int) *domain.Order {
	t.Helper()
	order, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID: userID,
		Lines:  []domain.LineRequest{{ArtworkID: artworkID, Quantity: quantity}},
	})
	require.NoError(t, err)
	return order
}

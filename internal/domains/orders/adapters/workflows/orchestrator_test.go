package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	orderactivities "github.com/galeria/marketplace-api/internal/durable/temporal/activities/orders"

	artworksmemory "github.com/galeria/marketplace-api/internal/domains/artworks/adapters/memory"
	artworksdomain "github.com/galeria/marketplace-api/internal/domains/artworks/domain"
	ordersmemory "github.com/galeria/marketplace-api/internal/domains/orders/adapters/memory"
	"github.com/galeria/marketplace-api/internal/domains/orders/application"
	ordersdomain "github.com/galeria/marketplace-api/internal/domains/orders/domain"
	"github.com/galeria/marketplace-api/internal/domains/orders/ports"
)

func TestSentinelFromWorkflowError_RestoresPortSentinels(t *testing.T) {
	cases := []struct {
		errType string
		want    error
	}{
		{orderactivities.ErrTypeInsufficientStock, ports.ErrInsufficientStock},
		{orderactivities.ErrTypeNotFound, ports.ErrNotFound},
		{orderactivities.ErrTypeInvalidState, ports.ErrInvalidState},
		{orderactivities.ErrTypeInvalidInput, application.ErrInvalidInput},
		{orderactivities.ErrTypeNotAllowed, application.ErrNotAllowed},
	}
	for _, tc := range cases {
		serialized := temporal.NewNonRetryableApplicationError("stock moved", tc.errType, nil)
		got := sentinelFromWorkflowError(serialized)
		require.ErrorIs(t, got, tc.want, "type %s", tc.errType)
	}
}

func TestSentinelFromWorkflowError_PassesUnknownErrorsThrough(t *testing.T) {
	plain := errors.New("temporal unreachable")
	require.Same(t, plain, sentinelFromWorkflowError(plain))

	unknownType := temporal.NewNonRetryableApplicationError("boom", "SOMETHING_ELSE", nil)
	require.Same(t, unknownType, sentinelFromWorkflowError(unknownType))
}

func TestInlineOrderWorkflows_DelegatesToService(t *testing.T) {
	catalog := artworksmemory.NewRepository()
	artwork, err := catalog.Save(context.Background(), &artworksdomain.Artwork{
		AuthorID: 2,
		Title:    "Nocturno",
		Price:    50,
		Quantity: 2,
		Active:   true,
	})
	require.NoError(t, err)

	service := application.NewService(ordersmemory.NewRepository(catalog), allowAllDirectory{}, nil)
	inline := NewInlineOrderWorkflows(service)

	order, err := inline.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID: 7,
		Lines:  []ordersdomain.LineRequest{{ArtworkID: artwork.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, ordersdomain.StatusPending, order.Status)

	_, err = inline.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID: 7,
		Lines:  []ordersdomain.LineRequest{{ArtworkID: artwork.ID, Quantity: 5}},
	})
	require.ErrorIs(t, err, ports.ErrInsufficientStock)
}

type allowAllDirectory struct{}

func (allowAllDirectory) IsAdmin(context.Context, int64) (bool, error) { return true, nil }

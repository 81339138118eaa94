//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	pacttest "github.com/galeria/marketplace-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type artworkPayload struct {
	ID       int64   `json:"id"`
	IDAutor  int64   `json:"id_autor"`
	Titulo   string  `json:"titulo"`
	Precio   float64 `json:"precio"`
	Cantidad int     `json:"cantidad"`
	Activo   bool    `json:"activo"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestGaleriaPortalContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	artworkBodyMatcher := matchers.Map{
		"id":       matchers.Like(pacttest.ExistingArtworkID),
		"id_autor": matchers.Like(int64(2)),
		"titulo":   matchers.Like("Nocturno sobre lienzo"),
		"precio":   matchers.Like(120.5),
		"cantidad": matchers.Like(3),
		"activo":   matchers.Like(true),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	problemContentType := matchers.S("application/problem+json")

	pact.AddInteraction().
		Given(pacttest.StateArtworkExists).
		UponReceiving("a request to fetch an existing artwork").
		WithRequest("GET", fmt.Sprintf("/obras/%d", pacttest.ExistingArtworkID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(artworkBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateArtworkMissing).
		UponReceiving("a request for a missing artwork").
		WithRequest("GET", fmt.Sprintf("/obras/%d", pacttest.MissingArtworkID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogBaseline).
		UponReceiving("an order placement without a session").
		WithRequest("POST", "/pedidos", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"detalles": matchers.ArrayMinLike(map[string]any{"id_obra": 1, "cantidad": 1}, 1),
			})
		}).
		WillRespondWith(http.StatusUnauthorized, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/unauthorized"),
				"title":  matchers.S("Unauthorized"),
				"status": matchers.Like(http.StatusUnauthorized),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateBuyerSession).
		UponReceiving("a request for the buyer's orders when none exist").
		WithRequest("GET", "/pedidos", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", matchers.S("Bearer "+pacttest.SessionToken))
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StatePendingOrder).
		UponReceiving("a request to cancel a pending order").
		WithRequest("DELETE", fmt.Sprintf("/pedidos/%d", pacttest.PendingOrderID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", matchers.S("Bearer "+pacttest.SessionToken))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"message": matchers.Like("Pedido eliminado correctamente."),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newPortalClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fetched, err := client.GetArtwork(ctx, pacttest.ExistingArtworkID)
		if err != nil {
			return fmt.Errorf("get artwork: %w", err)
		}
		if fetched == nil || fetched.ID != pacttest.ExistingArtworkID {
			return fmt.Errorf("expected artwork id %d, got %+v", pacttest.ExistingArtworkID, fetched)
		}

		if _, err := client.GetArtwork(ctx, pacttest.MissingArtworkID); err == nil {
			return fmt.Errorf("expected 404 for artwork %d", pacttest.MissingArtworkID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		if err := client.PlaceOrderUnauthenticated(ctx); err == nil {
			return fmt.Errorf("expected 401 for anonymous order placement")
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusUnauthorized {
			return fmt.Errorf("expected 401, got %d", apiErr.Status())
		}

		if err := client.ListOwnOrders(ctx, pacttest.SessionToken); err == nil {
			return fmt.Errorf("expected 404 for empty order list")
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		confirmation, err := client.CancelOrder(ctx, pacttest.SessionToken, pacttest.PendingOrderID)
		if err != nil {
			return fmt.Errorf("cancel order: %w", err)
		}
		if confirmation == "" {
			return fmt.Errorf("expected a confirmation message for the cancelled order")
		}

		return nil
	})
	require.NoError(t, err)
}

type portalClient struct {
	baseURL    string
	httpClient *http.Client
}

func newPortalClient(config pactconsumer.MockServerConfig) *portalClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &portalClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *portalClient) GetArtwork(ctx context.Context, id int64) (*artworkPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/obras/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload artworkPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *portalClient) PlaceOrderUnauthenticated(ctx context.Context) error {
	body := `{"detalles":[{"id_obra":1,"cantidad":1}]}`
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pedidos", strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return nil
}

func (c *portalClient) ListOwnOrders(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/pedidos", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return nil
}

func (c *portalClient) CancelOrder(ctx context.Context, token string, id int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/pedidos/%d", c.baseURL, id), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return "", decodeAPIError(res)
	}

	var confirmation struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(res.Body).Decode(&confirmation); err != nil {
		return "", err
	}
	return confirmation.Message, nil
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}

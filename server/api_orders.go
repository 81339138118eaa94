package galeriaserver

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/galeria/marketplace-api/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/galeria/marketplace-api/internal/domains/orders/domain"
	ordersports "github.com/galeria/marketplace-api/internal/domains/orders/ports"
	apierrors "github.com/galeria/marketplace-api/internal/shared/errors"
)

// OrdersAPI wires HTTP transport with the orders bounded context service and workflows.
type OrdersAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrdersAPI {
	return OrdersAPI{service: service, workflows: workflows}
}

// Post /pedidos
// Place an order reserving stock for every line
func (api *OrdersAPI) Place(c *gin.Context) {
	callerID, ok := principalID(c)
	if !ok {
		return
	}
	var payload ordermapper.PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := ordersports.PlaceOrderInput{
		UserID: callerID,
		Lines:  ordermapper.ToLineRequests(payload.Detalles),
	}
	order, err := api.placeOrder(c, input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(order))
}

func (api *OrdersAPI) placeOrder(c *gin.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(c.Request.Context(), input)
	}
	return api.service.PlaceOrder(c.Request.Context(), input)
}

// Get /pedidos
// List the caller's orders, optionally filtered by estado
func (api *OrdersAPI) ListOwn(c *gin.Context) {
	callerID, ok := principalID(c)
	if !ok {
		return
	}
	status, valid := ordermapper.ToDomainStatus(c.Query("estado"))
	if !valid {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("unknown estado value"))
		return
	}
	orders, err := api.service.ListOwn(c.Request.Context(), callerID, status)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	if len(orders) == 0 {
		respondProblem(c, apierrors.ErrNotFound.WithDetail("no orders found"))
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Get /pedidos/admin
// List every order, paged. Administrators only
func (api *OrdersAPI) ListAll(c *gin.Context) {
	callerID, ok := principalID(c)
	if !ok {
		return
	}
	status, valid := ordermapper.ToDomainStatus(c.Query("estado"))
	if !valid {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("unknown estado value"))
		return
	}
	input := ordersports.AdminListInput{
		CallerID: callerID,
		Status:   status,
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}
	if user := c.Query("id_usuario"); user != "" {
		userID, err := strconv.ParseInt(user, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		input.UserID = userID
	}
	page, err := api.service.ListAll(c.Request.Context(), input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.OrderPage{
		Pedidos:      ordermapper.FromDomainOrders(page.Orders),
		Total:        page.Total,
		Pagina:       page.Page,
		TotalPaginas: page.TotalPages,
	})
}

// Get /pedidos/:id
// Find an order by ID. Owner or administrator only
func (api *OrdersAPI) GetById(c *gin.Context) {
	callerID, ok := principalID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := api.service.GetByID(c.Request.Context(), callerID, id)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Put /pedidos/admin/:id
// Transition a pending order to completed. Administrators only
func (api *OrdersAPI) UpdateStatus(c *gin.Context) {
	callerID, ok := principalID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	// The body is optional; a bare PUT means the completion transition.
	var payload ordermapper.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.Estado != "" && payload.Estado != ordermapper.StatusCompletado {
		respondProblem(c, apierrors.ErrInvalidState.WithDetail("only the transition to completado is allowed"))
		return
	}
	order, err := api.service.Complete(c.Request.Context(), callerID, id)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Delete /pedidos/:id
// Cancel a pending order restoring its stock. Owner or administrator only
func (api *OrdersAPI) Cancel(c *gin.Context) {
	callerID, ok := principalID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.Cancel(c.Request.Context(), callerID, id); err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.Confirmation{Message: "Pedido eliminado correctamente."})
}

func queryInt(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}

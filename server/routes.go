package galeriaserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every API endpoint.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	Protected   bool
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the generated API endpoints.
type Routes []Route

// ApiHandleFunctions groups the per-context API handlers consumed by the router.
type ApiHandleFunctions struct {
	UsersAPI    UsersAPI
	ArtworksAPI ArtworksAPI
	OrdersAPI   OrdersAPI
}

// NewRouter returns a new gin router with all marketplace routes registered.
// Protected routes run the bearer session middleware before the handler.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.Default()
	for _, mw := range middleware {
		router.Use(mw)
	}

	auth := handleFunctions.UsersAPI.AuthMiddleware()
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandler
		}
		handlers := []gin.HandlerFunc{route.HandlerFunc}
		if route.Protected {
			handlers = append([]gin.HandlerFunc{auth}, handlers...)
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, handlers...)
		case http.MethodPost:
			router.POST(route.Pattern, handlers...)
		case http.MethodPut:
			router.PUT(route.Pattern, handlers...)
		case http.MethodDelete:
			router.DELETE(route.Pattern, handlers...)
		}
	}

	return router
}

func defaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "not implemented"})
}

func getRoutes(h ApiHandleFunctions) Routes {
	return Routes{
		{
			Name:        "RegisterUser",
			Method:      http.MethodPost,
			Pattern:     "/usuarios/registro",
			HandlerFunc: h.UsersAPI.Register,
		},
		{
			Name:        "LoginUser",
			Method:      http.MethodPost,
			Pattern:     "/usuarios/login",
			HandlerFunc: h.UsersAPI.Login,
		},
		{
			Name:        "LogoutUser",
			Method:      http.MethodPost,
			Pattern:     "/usuarios/logout",
			Protected:   true,
			HandlerFunc: h.UsersAPI.Logout,
		},
		{
			Name:        "GetProfile",
			Method:      http.MethodGet,
			Pattern:     "/usuarios/perfil",
			Protected:   true,
			HandlerFunc: h.UsersAPI.Profile,
		},
		{
			Name:        "ListArtworks",
			Method:      http.MethodGet,
			Pattern:     "/obras",
			HandlerFunc: h.ArtworksAPI.List,
		},
		{
			Name:        "GetArtworkById",
			Method:      http.MethodGet,
			Pattern:     "/obras/:id",
			HandlerFunc: h.ArtworksAPI.GetById,
		},
		{
			Name:        "CreateArtwork",
			Method:      http.MethodPost,
			Pattern:     "/obras",
			Protected:   true,
			HandlerFunc: h.ArtworksAPI.Create,
		},
		{
			Name:        "DeactivateArtwork",
			Method:      http.MethodPut,
			Pattern:     "/obras/:id/desactivar",
			Protected:   true,
			HandlerFunc: h.ArtworksAPI.Deactivate,
		},
		{
			Name:        "ActivateArtwork",
			Method:      http.MethodPut,
			Pattern:     "/obras/:id/activar",
			Protected:   true,
			HandlerFunc: h.ArtworksAPI.Activate,
		},
		{
			Name:        "PlaceOrder",
			Method:      http.MethodPost,
			Pattern:     "/pedidos",
			Protected:   true,
			HandlerFunc: h.OrdersAPI.Place,
		},
		{
			Name:        "ListOwnOrders",
			Method:      http.MethodGet,
			Pattern:     "/pedidos",
			Protected:   true,
			HandlerFunc: h.OrdersAPI.ListOwn,
		},
		{
			Name:        "ListAllOrders",
			Method:      http.MethodGet,
			Pattern:     "/pedidos/admin",
			Protected:   true,
			HandlerFunc: h.OrdersAPI.ListAll,
		},
		{
			Name:        "UpdateOrderStatus",
			Method:      http.MethodPut,
			Pattern:     "/pedidos/admin/:id",
			Protected:   true,
			HandlerFunc: h.OrdersAPI.UpdateStatus,
		},
		{
			Name:        "GetOrderById",
			Method:      http.MethodGet,
			Pattern:     "/pedidos/:id",
			Protected:   true,
			HandlerFunc: h.OrdersAPI.GetById,
		},
		{
			Name:        "CancelOrder",
			Method:      http.MethodDelete,
			Pattern:     "/pedidos/:id",
			Protected:   true,
			HandlerFunc: h.OrdersAPI.Cancel,
		},
	}
}

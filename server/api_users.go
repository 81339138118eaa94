package galeriaserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	usermapper "github.com/galeria/marketplace-api/internal/domains/users/adapters/http/mapper"
	usersports "github.com/galeria/marketplace-api/internal/domains/users/ports"
	apierrors "github.com/galeria/marketplace-api/internal/shared/errors"
)

// principalKey is the gin context key holding the authenticated user id.
const principalKey = "principalID"

// UsersAPI wires HTTP transport with the users bounded context service.
type UsersAPI struct {
	service usersports.Service
}

// NewUsersAPI creates a UsersAPI backed by the provided service.
func NewUsersAPI(service usersports.Service) UsersAPI {
	return UsersAPI{service: service}
}

// AuthMiddleware resolves the bearer token to a principal id and aborts with
// 401 when the session is missing or expired.
func (api *UsersAPI) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			c.Abort()
			return
		}
		userID, err := api.service.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("invalid or expired session"))
			c.Abort()
			return
		}
		c.Set(principalKey, userID)
		c.Next()
	}
}

// Post /usuarios/registro
// Register a new user account
func (api *UsersAPI) Register(c *gin.Context) {
	var payload usermapper.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.Register(c.Request.Context(), usermapper.ToDomainUser(payload))
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usermapper.FromDomainUser(saved))
}

// Post /usuarios/login
// Exchange credentials for an opaque session token
func (api *UsersAPI) Login(c *gin.Context) {
	var payload usermapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	token, err := api.service.Login(c.Request.Context(), payload.Nick, payload.Password)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.LoginResponse{Token: token})
}

// Post /usuarios/logout
// Revoke the current session token
func (api *UsersAPI) Logout(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		api.service.Logout(c.Request.Context(), token)
	}
	c.Status(http.StatusNoContent)
}

// Get /usuarios/perfil
// Return the authenticated user's profile
func (api *UsersAPI) Profile(c *gin.Context) {
	callerID, ok := principalID(c)
	if !ok {
		return
	}
	user, err := api.service.GetByID(c.Request.Context(), callerID)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(user))
}

// principalID returns the authenticated user id placed by AuthMiddleware.
// Responds 401 and returns false when the context carries no principal.
func principalID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		respondError(c, http.StatusUnauthorized, errors.New("no authenticated principal"))
		return 0, false
	}
	id, ok := value.(int64)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("no authenticated principal"))
		return 0, false
	}
	return id, true
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

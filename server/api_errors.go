package galeriaserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/galeria/marketplace-api/internal/shared/errors"

	artworksapp "github.com/galeria/marketplace-api/internal/domains/artworks/application"
	artworksports "github.com/galeria/marketplace-api/internal/domains/artworks/ports"
	ordersapp "github.com/galeria/marketplace-api/internal/domains/orders/application"
	ordersports "github.com/galeria/marketplace-api/internal/domains/orders/ports"
	usersdomain "github.com/galeria/marketplace-api/internal/domains/users/domain"
	usersports "github.com/galeria/marketplace-api/internal/domains/users/ports"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError converts plain errors into RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, ordersports.ErrInsufficientStock):
		respondProblem(c, apierrors.ErrInsufficientStock.WithDetail(err.Error()))
	case errors.Is(err, ordersports.ErrInvalidState):
		respondProblem(c, apierrors.ErrInvalidState.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrNotAllowed):
		respondProblem(c, apierrors.ErrForbidden.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

func respondArtworkServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, artworksports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, artworksapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
	case errors.Is(err, artworksapp.ErrNotAllowed):
		respondProblem(c, apierrors.ErrForbidden.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

func respondUserServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, usersports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, usersports.ErrInvalidCredentials),
		errors.Is(err, usersports.ErrSessionNotFound):
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail(err.Error()))
	case errors.Is(err, usersdomain.ErrEmptyNick),
		errors.Is(err, usersdomain.ErrEmptyPassword),
		errors.Is(err, usersdomain.ErrWeakPassword),
		errors.Is(err, usersdomain.ErrInvalidEmail),
		errors.Is(err, usersdomain.ErrInvalidRole):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

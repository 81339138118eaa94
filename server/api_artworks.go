package galeriaserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	artworkmapper "github.com/galeria/marketplace-api/internal/domains/artworks/adapters/http/mapper"
	artworksports "github.com/galeria/marketplace-api/internal/domains/artworks/ports"
)

// ArtworksAPI wires HTTP transport with the artworks bounded context service.
type ArtworksAPI struct {
	service artworksports.Service
}

// NewArtworksAPI creates an ArtworksAPI backed by the provided service.
func NewArtworksAPI(service artworksports.Service) ArtworksAPI {
	return ArtworksAPI{service: service}
}

// Get /obras
// List catalog artworks
func (api *ArtworksAPI) List(c *gin.Context) {
	filter := artworksports.Filter{OnlyActive: c.Query("todas") == ""}
	if author := c.Query("autor"); author != "" {
		authorID, err := strconv.ParseInt(author, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		filter.AuthorID = authorID
	}
	artworks, err := api.service.List(c.Request.Context(), filter)
	if err != nil {
		respondArtworkServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, artworkmapper.FromDomainArtworks(artworks))
}

// Get /obras/:id
// Find artwork by ID
func (api *ArtworksAPI) GetById(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	artwork, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondArtworkServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, artworkmapper.FromDomainArtwork(artwork))
}

// Post /obras
// List a new artwork for sale
func (api *ArtworksAPI) Create(c *gin.Context) {
	callerID, ok := principalID(c)
	if !ok {
		return
	}
	var payload artworkmapper.CreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.Create(c.Request.Context(), callerID, artworkmapper.ToDomainArtwork(payload))
	if err != nil {
		respondArtworkServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artworkmapper.FromDomainArtwork(saved))
}

// Put /obras/:id/desactivar
// Hide an artwork from purchase
func (api *ArtworksAPI) Deactivate(c *gin.Context) {
	callerID, ok := principalID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.Deactivate(c.Request.Context(), callerID, id); err != nil {
		respondArtworkServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Put /obras/:id/activar
// Restore a hidden artwork
func (api *ArtworksAPI) Activate(c *gin.Context) {
	callerID, ok := principalID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.Activate(c.Request.Context(), callerID, id); err != nil {
		respondArtworkServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}

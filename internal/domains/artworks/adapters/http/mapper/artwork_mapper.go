package mapper

import (
	"time"

	artworksdomain "github.com/galeria/marketplace-api/internal/domains/artworks/domain"
)

// CreateRequest is the payload accepted by artwork creation.
type CreateRequest struct {
	Titulo      string   `json:"titulo" binding:"required"`
	Descripcion string   `json:"descripcion"`
	Imagen      string   `json:"imagen"`
	Etiquetas   []string `json:"etiquetas"`
	Precio      float64  `json:"precio" binding:"required"`
	Cantidad    int      `json:"cantidad" binding:"required"`
}

// Artwork is the transport-layer artwork representation.
type Artwork struct {
	ID          int64     `json:"id"`
	IDAutor     int64     `json:"id_autor"`
	Titulo      string    `json:"titulo"`
	Descripcion string    `json:"descripcion,omitempty"`
	Imagen      string    `json:"imagen,omitempty"`
	Etiquetas   []string  `json:"etiquetas,omitempty"`
	Precio      float64   `json:"precio"`
	Cantidad    int       `json:"cantidad"`
	Activo      bool      `json:"activo"`
	Creado      time.Time `json:"creado"`
}

// ToDomainArtwork converts a creation payload into the domain model.
func ToDomainArtwork(req CreateRequest) *artworksdomain.Artwork {
	return &artworksdomain.Artwork{
		Title:       req.Titulo,
		Description: req.Descripcion,
		ImageURL:    req.Imagen,
		Tags:        req.Etiquetas,
		Price:       req.Precio,
		Quantity:    req.Cantidad,
	}
}

// FromDomainArtwork converts a domain artwork to the transport representation.
func FromDomainArtwork(artwork *artworksdomain.Artwork) Artwork {
	if artwork == nil {
		return Artwork{}
	}
	return Artwork{
		ID:          artwork.ID,
		IDAutor:     artwork.AuthorID,
		Titulo:      artwork.Title,
		Descripcion: artwork.Description,
		Imagen:      artwork.ImageURL,
		Etiquetas:   artwork.Tags,
		Precio:      artwork.Price,
		Cantidad:    artwork.Quantity,
		Activo:      artwork.Active,
		Creado:      artwork.CreatedAt,
	}
}

// FromDomainArtworks converts a list of domain artworks.
func FromDomainArtworks(artworks []*artworksdomain.Artwork) []Artwork {
	out := make([]Artwork, 0, len(artworks))
	for _, artwork := range artworks {
		out = append(out, FromDomainArtwork(artwork))
	}
	return out
}

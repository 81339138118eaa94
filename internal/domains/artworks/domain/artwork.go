package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyTitle      = errors.New("title is required")
	ErrInvalidPrice    = errors.New("price must be greater than zero")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
	ErrInvalidAuthor   = errors.New("author id must be greater than zero")
)

// Artwork models a sellable piece listed by an artist.
type Artwork struct {
	ID          int64
	AuthorID    int64
	Title       string
	Description string
	ImageURL    string
	Tags        []string
	Price       float64
	Quantity    int
	Active      bool
	CreatedAt   time.Time
}

// NewArtwork validates and constructs a new Artwork aggregate.
func NewArtwork(id, authorID int64, title string, price float64, quantity int) (*Artwork, error) {
	artwork := &Artwork{
		ID:       id,
		AuthorID: authorID,
		Title:    strings.TrimSpace(title),
		Price:    price,
		Quantity: quantity,
		Active:   true,
	}
	if err := artwork.Validate(); err != nil {
		return nil, err
	}
	return artwork, nil
}

// Validate enforces invariants on the aggregate.
func (a *Artwork) Validate() error {
	if a.AuthorID <= 0 {
		return ErrInvalidAuthor
	}
	if strings.TrimSpace(a.Title) == "" {
		return ErrEmptyTitle
	}
	if a.Price <= 0 {
		return ErrInvalidPrice
	}
	if a.Quantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// Available reports whether the piece can currently be purchased in the given quantity.
func (a *Artwork) Available(quantity int) bool {
	return a.Active && quantity > 0 && a.Quantity >= quantity
}

// Deactivate removes the piece from purchase eligibility.
func (a *Artwork) Deactivate() { a.Active = false }

// Activate restores purchase eligibility.
func (a *Artwork) Activate() { a.Active = true }

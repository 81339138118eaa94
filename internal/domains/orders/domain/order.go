package domain

import (
	"errors"
	"time"
)

// Status enumerates the order lifecycle. Pending is the only mutable state;
// completed is terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

var (
	ErrEmptyOrder       = errors.New("order must contain at least one line")
	ErrInvalidArtworkID = errors.New("artwork id must be greater than zero")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidStatus    = errors.New("order status is invalid")
)

// LineRequest is one requested purchase line as submitted by the buyer.
// Prices are never accepted from the caller; they are snapshotted server-side.
type LineRequest struct {
	ArtworkID int64
	Quantity  int
}

// ValidateRequest checks a placement request before any storage work.
func ValidateRequest(lines []LineRequest) error {
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	for _, line := range lines {
		if line.ArtworkID <= 0 {
			return ErrInvalidArtworkID
		}
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// ArtworkSummary is the read-composed view of a purchased piece.
type ArtworkSummary struct {
	ID          int64
	Title       string
	Description string
	Price       float64
	ImageURL    string
}

// OwnerSummary is the read-composed view of the purchasing principal.
type OwnerSummary struct {
	ID    int64
	Name  string
	Email string
}

// Line is one artwork + quantity + price snapshot within an order. Lines are
// exclusively owned by their order and destroyed with it.
type Line struct {
	ID        int64
	OrderID   int64
	ArtworkID int64
	Quantity  int
	UnitPrice float64
	Subtotal  float64
	Artwork   *ArtworkSummary
}

// Order groups purchase lines owned by one principal.
type Order struct {
	ID       int64
	UserID   int64
	Status   Status
	Total    float64
	PlacedAt time.Time
	Lines    []Line
	Owner    *OwnerSummary
}

// IsPending reports whether the order can still be completed or cancelled.
func (o *Order) IsPending() bool { return o.Status == StatusPending }

// UpdateStatus ensures only known states are accepted and defaults to pending.
func (o *Order) UpdateStatus(status Status) error {
	if status == "" {
		status = StatusPending
	}
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

// LineTotal sums the line subtotals. The total invariant requires
// Order.Total to equal this at all times after creation.
func (o *Order) LineTotal() float64 {
	var total float64
	for _, line := range o.Lines {
		total += line.Subtotal
	}
	return total
}

// IsValidStatus reports whether the value is a known lifecycle state.
func IsValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

package mapper

import (
	"time"

	ordersdomain "github.com/galeria/marketplace-api/internal/domains/orders/domain"
)

// Wire-level status values kept in Spanish for compatibility with existing
// clients of the marketplace API.
const (
	StatusPendiente  = "pendiente"
	StatusCompletado = "completado"
)

// LineRequest is one requested purchase line on the wire.
type LineRequest struct {
	IDObra   int64 `json:"id_obra" binding:"required"`
	Cantidad int   `json:"cantidad" binding:"required"`
}

// PlaceOrderRequest is the payload accepted by order placement.
type PlaceOrderRequest struct {
	Detalles []LineRequest `json:"detalles"`
}

// UpdateStatusRequest is the optional payload accepted by the administrative
// status transition. An absent body or estado defaults to completion.
type UpdateStatusRequest struct {
	Estado string `json:"estado"`
}

// Confirmation is the body returned by destructive operations.
type Confirmation struct {
	Message string `json:"message"`
}

// ArtworkSummary is the embedded artwork view on an order line.
type ArtworkSummary struct {
	ID          int64   `json:"id"`
	Titulo      string  `json:"titulo"`
	Descripcion string  `json:"descripcion,omitempty"`
	Precio      float64 `json:"precio"`
	Imagen      string  `json:"imagen,omitempty"`
}

// Line is one order line on the wire, price snapshot included.
type Line struct {
	ID             int64           `json:"id"`
	IDObra         int64           `json:"id_obra"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario float64         `json:"precio_unitario"`
	Subtotal       float64         `json:"subtotal"`
	Obra           *ArtworkSummary `json:"obra,omitempty"`
}

// Owner is the embedded buyer view on an administrative listing.
type Owner struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

// Order is the transport-layer order representation.
type Order struct {
	ID        int64     `json:"id"`
	IDUsuario int64     `json:"id_usuario"`
	Estado    string    `json:"estado"`
	Total     float64   `json:"total"`
	Fecha     time.Time `json:"fecha"`
	Detalles  []Line    `json:"detalles"`
	Usuario   *Owner    `json:"usuario,omitempty"`
}

// OrderPage is the paged administrative listing.
type OrderPage struct {
	Pedidos      []Order `json:"pedidos"`
	Total        int64   `json:"total"`
	Pagina       int     `json:"pagina"`
	TotalPaginas int     `json:"totalPaginas"`
}

// ToLineRequests converts wire lines to domain placement lines.
func ToLineRequests(lines []LineRequest) []ordersdomain.LineRequest {
	requests := make([]ordersdomain.LineRequest, 0, len(lines))
	for _, line := range lines {
		requests = append(requests, ordersdomain.LineRequest{
			ArtworkID: line.IDObra,
			Quantity:  line.Cantidad,
		})
	}
	return requests
}

// ToDomainStatus translates a wire status into the domain value. The second
// return reports whether the value was recognized; empty means no filter.
func ToDomainStatus(estado string) (ordersdomain.Status, bool) {
	switch estado {
	case "":
		return "", true
	case StatusPendiente:
		return ordersdomain.StatusPending, true
	case StatusCompletado:
		return ordersdomain.StatusCompleted, true
	default:
		return "", false
	}
}

// FromDomainStatus translates a domain status into the wire value.
func FromDomainStatus(status ordersdomain.Status) string {
	switch status {
	case ordersdomain.StatusCompleted:
		return StatusCompletado
	default:
		return StatusPendiente
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	out := Order{
		ID:        order.ID,
		IDUsuario: order.UserID,
		Estado:    FromDomainStatus(order.Status),
		Total:     order.Total,
		Fecha:     order.PlacedAt,
		Detalles:  make([]Line, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		wireLine := Line{
			ID:             line.ID,
			IDObra:         line.ArtworkID,
			Cantidad:       line.Quantity,
			PrecioUnitario: line.UnitPrice,
			Subtotal:       line.Subtotal,
		}
		if line.Artwork != nil {
			wireLine.Obra = &ArtworkSummary{
				ID:          line.Artwork.ID,
				Titulo:      line.Artwork.Title,
				Descripcion: line.Artwork.Description,
				Precio:      line.Artwork.Price,
				Imagen:      line.Artwork.ImageURL,
			}
		}
		out.Detalles = append(out.Detalles, wireLine)
	}
	if order.Owner != nil {
		out.Usuario = &Owner{ID: order.Owner.ID, Nombre: order.Owner.Name, Email: order.Owner.Email}
	}
	return out
}

// FromDomainOrders converts a list of domain orders.
func FromDomainOrders(orders []*ordersdomain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromDomainOrder(order))
	}
	return out
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/galeria/marketplace-api/internal/domains/orders/domain"
	"github.com/galeria/marketplace-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. Placement and
// cancellation run inside a single transaction with row locks on the
// referenced artworks so concurrent buyers can never oversell stock.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	UserID    int64     `gorm:"column:user_id;index"`
	Status    string    `gorm:"column:status;type:varchar(16);index"`
	Total     float64   `gorm:"column:total;type:numeric(10,2)"`
	PlacedAt  time.Time `gorm:"column:placed_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderLineRecord struct {
	ID        int64   `gorm:"primaryKey;column:id"`
	OrderID   int64   `gorm:"column:order_id;index"`
	ArtworkID int64   `gorm:"column:artwork_id;index"`
	Quantity  int     `gorm:"column:quantity"`
	UnitPrice float64 `gorm:"column:unit_price;type:numeric(10,2)"`
	Subtotal  float64 `gorm:"column:subtotal;type:numeric(10,2)"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

// artworkStockRow is this context's read/write view of the catalog table.
// Only the columns placement needs are mapped.
type artworkStockRow struct {
	ID          int64   `gorm:"column:id"`
	Title       string  `gorm:"column:title"`
	Description string  `gorm:"column:description"`
	ImageURL    string  `gorm:"column:image_url"`
	Price       float64 `gorm:"column:price"`
	Quantity    int     `gorm:"column:quantity"`
	Active      bool    `gorm:"column:active"`
}

func (artworkStockRow) TableName() string { return "artworks" }

// ownerRow is this context's read view of the principals table.
type ownerRow struct {
	ID       int64  `gorm:"column:id"`
	Name     string `gorm:"column:name"`
	LastName string `gorm:"column:last_name"`
	Email    string `gorm:"column:email"`
}

func (ownerRow) TableName() string { return "users" }

// Place runs the reservation protocol: lock every referenced artwork FOR
// UPDATE, validate availability, then create the order, snapshot prices into
// lines, decrement stock and write back the total. Any failure rolls the
// whole transaction back.
func (r *Repository) Place(ctx context.Context, userID int64, lines []domain.LineRequest) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var orderID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Locks are taken in ascending artwork id order so two concurrent
		// placements over the same pieces can never deadlock.
		artworkIDs := make([]int64, 0, len(lines))
		seen := make(map[int64]struct{}, len(lines))
		for _, line := range lines {
			if _, ok := seen[line.ArtworkID]; ok {
				continue
			}
			seen[line.ArtworkID] = struct{}{}
			artworkIDs = append(artworkIDs, line.ArtworkID)
		}
		sort.Slice(artworkIDs, func(i, j int) bool { return artworkIDs[i] < artworkIDs[j] })

		priced := make(map[int64]artworkStockRow, len(artworkIDs))
		for _, artworkID := range artworkIDs {
			var row artworkStockRow
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", artworkID).
				Take(&row).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: artwork %d", ports.ErrInsufficientStock, artworkID)
				}
				return err
			}
			priced[artworkID] = row
		}
		for _, line := range lines {
			row := priced[line.ArtworkID]
			if !row.Active || row.Quantity < line.Quantity {
				return fmt.Errorf("%w: artwork %d", ports.ErrInsufficientStock, line.ArtworkID)
			}
		}

		order := orderRecord{
			UserID:   userID,
			Status:   string(domain.StatusPending),
			PlacedAt: time.Now().UTC(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, line := range lines {
			row := priced[line.ArtworkID]
			subtotal := row.Price * float64(line.Quantity)
			record := orderLineRecord{
				OrderID:   order.ID,
				ArtworkID: line.ArtworkID,
				Quantity:  line.Quantity,
				UnitPrice: row.Price,
				Subtotal:  subtotal,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			// Conditional decrement guards duplicate artwork ids within one
			// request from driving stock negative.
			res := tx.Model(&artworkStockRow{}).
				Where("id = ? AND quantity >= ?", line.ArtworkID, line.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: artwork %d", ports.ErrInsufficientStock, line.ArtworkID)
			}
			total += subtotal
		}

		if err := tx.Model(&orderRecord{}).Where("id = ?", order.ID).
			Update("total", total).Error; err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

// GetByID loads the order with its lines, artwork summaries and owner.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	orders, err := r.hydrate(ctx, []orderRecord{record})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// ListByOwner returns one principal's orders newest first.
func (r *Repository) ListByOwner(ctx context.Context, userID int64, status domain.Status) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	var records []orderRecord
	if err := query.Order("placed_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, records)
}

// ListPage returns one page of orders plus the total matching count.
func (r *Repository) ListPage(ctx context.Context, filter ports.AdminFilter) ([]*domain.Order, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []orderRecord
	if err := query.Order("placed_at DESC, id DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	orders, err := r.hydrate(ctx, records)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Complete flips a pending order to completed with a conditional update so a
// concurrent transition cannot apply twice.
func (r *Repository) Complete(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	res := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ? AND status = ?", id, string(domain.StatusPending)).
		Updates(map[string]any{
			"status":     string(domain.StatusCompleted),
			"updated_at": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ports.ErrInvalidState
	}
	return r.GetByID(ctx, id)
}

// Cancel restores every line's stock and deletes the lines and the order in
// one transaction. The order row is locked so a concurrent completion and a
// cancellation cannot interleave.
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record orderRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			Take(&record).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		if record.Status != string(domain.StatusPending) {
			return ports.ErrInvalidState
		}
		var lines []orderLineRecord
		if err := tx.Where("order_id = ?", id).Find(&lines).Error; err != nil {
			return err
		}
		for _, line := range lines {
			if err := tx.Model(&artworkStockRow{}).
				Where("id = ?", line.ArtworkID).
				Update("quantity", gorm.Expr("quantity + ?", line.Quantity)).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("order_id = ?", id).Delete(&orderLineRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&orderRecord{}, id).Error
	})
}

// hydrate attaches lines, artwork summaries and owners to the given records.
func (r *Repository) hydrate(ctx context.Context, records []orderRecord) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0, len(records))
	if len(records) == 0 {
		return orders, nil
	}

	orderIDs := make([]int64, 0, len(records))
	userIDs := make([]int64, 0, len(records))
	for _, record := range records {
		orderIDs = append(orderIDs, record.ID)
		userIDs = append(userIDs, record.UserID)
	}

	var lines []orderLineRecord
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("id ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}

	artworkIDs := make([]int64, 0, len(lines))
	for _, line := range lines {
		artworkIDs = append(artworkIDs, line.ArtworkID)
	}
	summaries := map[int64]*domain.ArtworkSummary{}
	if len(artworkIDs) > 0 {
		var rows []artworkStockRow
		if err := r.db.WithContext(ctx).Where("id IN ?", artworkIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			summaries[row.ID] = &domain.ArtworkSummary{
				ID:          row.ID,
				Title:       row.Title,
				Description: row.Description,
				Price:       row.Price,
				ImageURL:    row.ImageURL,
			}
		}
	}

	owners := map[int64]*domain.OwnerSummary{}
	var ownerRows []ownerRow
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&ownerRows).Error; err != nil {
		return nil, err
	}
	for _, row := range ownerRows {
		name := row.Name
		if row.LastName != "" {
			name = name + " " + row.LastName
		}
		owners[row.ID] = &domain.OwnerSummary{ID: row.ID, Name: name, Email: row.Email}
	}

	linesByOrder := map[int64][]domain.Line{}
	for _, line := range lines {
		linesByOrder[line.OrderID] = append(linesByOrder[line.OrderID], domain.Line{
			ID:        line.ID,
			OrderID:   line.OrderID,
			ArtworkID: line.ArtworkID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
			Artwork:   summaries[line.ArtworkID],
		})
	}

	for _, record := range records {
		orders = append(orders, &domain.Order{
			ID:       record.ID,
			UserID:   record.UserID,
			Status:   domain.Status(record.Status),
			Total:    record.Total,
			PlacedAt: record.PlacedAt,
			Lines:    linesByOrder[record.ID],
			Owner:    owners[record.UserID],
		})
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

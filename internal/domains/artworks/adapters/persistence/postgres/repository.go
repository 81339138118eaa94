package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/galeria/marketplace-api/internal/domains/artworks/domain"
	"github.com/galeria/marketplace-api/internal/domains/artworks/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists artworks in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type artworkRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	AuthorID    int64          `gorm:"column:author_id;index;uniqueIndex:idx_artworks_title_author"`
	Title       string         `gorm:"column:title;type:varchar(100);uniqueIndex:idx_artworks_title_author"`
	Description string         `gorm:"column:description;type:text"`
	ImageURL    string         `gorm:"column:image_url"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[]"`
	Price       float64        `gorm:"column:price;type:numeric(10,2)"`
	Quantity    int            `gorm:"column:quantity"`
	Active      bool           `gorm:"column:active;index"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (artworkRecord) TableName() string { return "artworks" }

// Save inserts or updates an artwork.
func (r *Repository) Save(ctx context.Context, artwork *domain.Artwork) (*domain.Artwork, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if artwork == nil {
		return nil, errors.New("artwork is nil")
	}
	record := toRecord(artwork)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"author_id":   record.AuthorID,
				"title":       record.Title,
				"description": record.Description,
				"image_url":   record.ImageURL,
				"tags":        record.Tags,
				"price":       record.Price,
				"quantity":    record.Quantity,
				"active":      record.Active,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an artwork by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Artwork, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record artworkRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns artworks matching the filter.
func (r *Repository) List(ctx context.Context, filter ports.Filter) ([]*domain.Artwork, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx)
	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.OnlyActive {
		query = query.Where("active")
	}
	var records []artworkRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	artworks := make([]*domain.Artwork, 0, len(records))
	for i := range records {
		artworks = append(artworks, records[i].toDomain())
	}
	return artworks, nil
}

// SetActive flips purchase eligibility.
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&artworkRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"active": active, "updated_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Delete removes an artwork by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&artworkRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres artwork repository not configured")
	}
	return nil
}

func toRecord(artwork *domain.Artwork) artworkRecord {
	return artworkRecord{
		ID:          artwork.ID,
		AuthorID:    artwork.AuthorID,
		Title:       artwork.Title,
		Description: artwork.Description,
		ImageURL:    artwork.ImageURL,
		Tags:        pq.StringArray(artwork.Tags),
		Price:       artwork.Price,
		Quantity:    artwork.Quantity,
		Active:      artwork.Active,
	}
}

func (r artworkRecord) toDomain() *domain.Artwork {
	artwork := &domain.Artwork{
		ID:          r.ID,
		AuthorID:    r.AuthorID,
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
	}
	if len(r.Tags) > 0 {
		artwork.Tags = append([]string{}, r.Tags...)
	}
	return artwork
}

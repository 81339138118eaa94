package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&sessionRecord{},
		&artworkRecord{},
		&orderRecord{},
		&orderLineRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	DNI       string    `gorm:"column:dni;type:varchar(16);uniqueIndex"`
	Name      string    `gorm:"column:name"`
	LastName  string    `gorm:"column:last_name"`
	Nick      string    `gorm:"column:nick;uniqueIndex"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Password  string    `gorm:"column:password"`
	Phone     string    `gorm:"column:phone"`
	Address   string    `gorm:"column:address"`
	Role      string    `gorm:"column:role;type:varchar(16);index"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	UserID    int64      `gorm:"column:user_id;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Artwork schema mirrors the artworks Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	UserID    int64     `gorm:"column:user_id;index"`
	Status    string    `gorm:"column:status;type:varchar(16);index"`
	Total     float64   `gorm:"column:total;type:numeric(10,2)"`
	PlacedAt  time.Time `gorm:"column:placed_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Order line schema mirrors the orders Postgres adapter. Lines are owned by
// their order and removed with it on cancellation.
type orderLineRecord struct {
	ID        int64   `gorm:"primaryKey;column:id"`
	OrderID   int64   `gorm:"column:order_id;index"`
	ArtworkID int64   `gorm:"column:artwork_id;index"`
	Quantity  int     `gorm:"column:quantity"`
	UnitPrice float64 `gorm:"column:unit_price;type:numeric(10,2)"`
	Subtotal  float64 `gorm:"column:subtotal;type:numeric(10,2)"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

package entity

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/dkimathi/invoicer-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Amount is a monetary value that tolerates loose JSON input. Historical
// invoice rows (and raw form input) may carry prices as numbers, quoted
// numeric strings, null, or garbage; anything non-numeric decodes to zero
// instead of failing the whole document.
type Amount float64

// UnmarshalJSON implements the lenient decoding rule.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		*a = Amount(CoerceAmount(s))
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

// CoerceAmount converts raw textual price input to a number. Empty or
// non-numeric input coerces to zero.
func CoerceAmount(raw string) float64 {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}

// LineItem is one billable description/price pair within an invoice.
type LineItem struct {
	Description string `json:"description"`
	UnitPrice   Amount `json:"price"`
}

// LineItems is the ordered item snapshot stored as a JSONB column.
type LineItems []LineItem

// Value implements driver.Valuer for the JSONB column.
func (l LineItems) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner for the JSONB column.
func (l *LineItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("entity: unsupported source type for LineItems")
	}
}

// ComputeTotal sums the item prices. It is the single source of truth for
// summation: the composer uses it when packaging a draft and the renderer
// re-derives with it instead of trusting the stored total.
func ComputeTotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.UnitPrice)
	}
	return total
}

// SenderProfile is the issuing party's display information, embedded in each
// invoice rather than persisted as a separate entity.
type SenderProfile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// Value implements driver.Valuer for the JSONB column.
func (p SenderProfile) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for the JSONB column.
func (p *SenderProfile) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("entity: unsupported source type for SenderProfile")
	}
}

// Invoice is a persisted invoice record. It is created exactly once at
// submission time and never mutated by this system thereafter. Amount holds
// the precomputed total for fast list display; the items snapshot stays the
// authoritative source for document regeneration.
type Invoice struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientName  string             `gorm:"size:255;not null" json:"client_name"`
	Amount      float64            `gorm:"type:decimal(15,2);default:0" json:"amount"`
	Items       LineItems          `gorm:"type:jsonb" json:"items"`
	CompanyInfo *SenderProfile     `gorm:"type:jsonb" json:"company_info,omitempty"`
	Status      enum.InvoiceStatus `gorm:"size:50;default:'Pending'" json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceStatus represents the billing status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Invoice is a bill issued to a client.
type Invoice struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Number    string          `json:"number" gorm:"size:20;uniqueIndex;not null"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Status    InvoiceStatus   `json:"status" gorm:"type:varchar(10);not null;default:'draft';index"`
	DueDate   time.Time       `json:"due_date"`
	IssuedAt  time.Time       `json:"issued_at"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate assigns an invoice number before creating the record.
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.Number == "" {
		// INV- plus the first uuid block keeps numbers short but collision-safe.
		i.Number = "INV-" + strings.ToUpper(strings.SplitN(uuid.New().String(), "-", 2)[0])
	}
	return nil
}

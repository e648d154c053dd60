package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketStatus represents the status of a support ticket.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority represents how urgent a ticket is.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityNormal TicketPriority = "normal"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// Ticket is a client support request.
type Ticket struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Reference string         `json:"reference" gorm:"type:char(36);uniqueIndex;not null"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Subject   string         `json:"subject" gorm:"size:255;not null"`
	Message   string         `json:"message" gorm:"type:text;not null"`
	Priority  TicketPriority `json:"priority" gorm:"type:varchar(10);not null;default:'normal'"`
	Status    TicketStatus   `json:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate assigns a public reference before creating the record.
func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.Reference == "" {
		t.Reference = uuid.New().String()
	}
	return nil
}

package model

import "time"

// Roles assignable to a user. Registration always produces RoleClient; there
// is no promotion endpoint.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// User represents a portal account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null;default:'client'"`
	FirstName    string    `json:"first_name" gorm:"size:100;not null"`
	LastName     string    `json:"last_name" gorm:"size:100;not null"`
	Phone        string    `json:"phone,omitempty" gorm:"size:50"`
	Company      string    `json:"company,omitempty" gorm:"size:255"`

	// Notification preferences, embedded flat in the users table.
	NotifyProjectUpdates bool `json:"notify_project_updates" gorm:"not null;default:true"`
	NotifyTicketReplies  bool `json:"notify_ticket_replies" gorm:"not null;default:true"`
	NotifyInvoices       bool `json:"notify_invoices" gorm:"not null;default:true"`
	NotifyMarketing      bool `json:"notify_marketing" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotificationPreferences is the outward shape of the four preference flags.
type NotificationPreferences struct {
	ProjectUpdates bool `json:"project_updates"`
	TicketReplies  bool `json:"ticket_replies"`
	Invoices       bool `json:"invoices"`
	Marketing      bool `json:"marketing"`
}

// Notifications bundles the stored flags for responses.
func (u *User) Notifications() NotificationPreferences {
	return NotificationPreferences{
		ProjectUpdates: u.NotifyProjectUpdates,
		TicketReplies:  u.NotifyTicketReplies,
		Invoices:       u.NotifyInvoices,
		Marketing:      u.NotifyMarketing,
	}
}

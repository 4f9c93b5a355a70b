package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one purchase transaction. The admission engine never creates
// bookings; it observes their status and, on behalf of the external
// cancellation collaborator, transitions them to CANCELLED.
type Booking struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Reference   string     `gorm:"unique;not null" json:"reference"`
	EventName   string     `gorm:"type:varchar(255);not null" json:"event_name"`
	Status      string     `gorm:"type:varchar(20);check:status IN ('PENDING', 'CONFIRMED', 'CANCELLED', 'REFUNDED');default:'PENDING'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == string(StatusConfirmed)
}

func (b *Booking) IsCancelled() bool {
	return b.Status == string(StatusCancelled)
}

func (b *Booking) IsRefunded() bool {
	return b.Status == string(StatusRefunded)
}

func (b *Booking) Cancel() {
	b.Status = string(StatusCancelled)
	now := time.Now()
	b.CancelledAt = &now
	b.UpdatedAt = now
}

// Summary is the booking-identifying slice of a scan or status response.
type Summary struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	EventName string `json:"event_name"`
	Status    string `json:"status"`
}

func (b *Booking) ToSummary() Summary {
	return Summary{
		ID:        b.ID.String(),
		Reference: b.Reference,
		EventName: b.EventName,
		Status:    b.Status,
	}
}

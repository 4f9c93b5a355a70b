package checkins

import (
	"time"

	"github.com/google/uuid"
)

// CheckIn is one immutable ledger entry: who admitted how many people
// through which credential, and when. StaffID is nil for unauthenticated
// kiosk scans. IsCorrection is reserved for manual adjustments and is never
// set by the scan path.
type CheckIn struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TicketID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"ticket_id"`
	StaffID        *uuid.UUID `gorm:"type:uuid" json:"staff_id,omitempty"`
	PersonsEntered int        `gorm:"not null" json:"persons_entered"`
	IsCorrection   bool       `gorm:"not null;default:false" json:"is_correction"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TableName sets the table name for CheckIn
func (CheckIn) TableName() string {
	return "check_ins"
}

// HistoryEntry is the status-endpoint projection of a ledger row.
type HistoryEntry struct {
	Time           time.Time `json:"time"`
	PersonsEntered int       `json:"persons_entered"`
	StaffID        *string   `json:"staff_id,omitempty"`
	IsCorrection   bool      `json:"is_correction"`
}

func (c *CheckIn) ToHistoryEntry() HistoryEntry {
	entry := HistoryEntry{
		Time:           c.CreatedAt,
		PersonsEntered: c.PersonsEntered,
		IsCorrection:   c.IsCorrection,
	}
	if c.StaffID != nil {
		id := c.StaffID.String()
		entry.StaffID = &id
	}
	return entry
}

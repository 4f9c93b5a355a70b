package tickets

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is one admission credential. An INDIVIDUAL ticket admits one
// person; a GROUP ticket admits up to TotalPersons and aggregates the
// booking's individual tickets that carry its ID in GroupID. IssueSeq is the
// persisted issuance order; group scans consume children strictly in this
// order so the cascade is deterministic.
type Ticket struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Token         string     `gorm:"unique;not null" json:"token"`
	BookingID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"booking_id"`
	GroupID       *uuid.UUID `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Role          string     `gorm:"type:varchar(20);check:role IN ('INDIVIDUAL', 'GROUP');not null" json:"role"`
	TotalPersons  int        `gorm:"not null" json:"total_persons"`
	AdmittedCount int        `gorm:"not null;default:0" json:"admitted_count"`
	Status        string     `gorm:"type:varchar(30);check:status IN ('VALID', 'PARTIALLY_ADMITTED', 'ADMITTED', 'CANCELLED');default:'VALID'" json:"status"`
	SeatLabel     string     `gorm:"type:varchar(50)" json:"seat_label,omitempty"`
	IssueSeq      int        `gorm:"not null" json:"issue_seq"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName sets the table name for Ticket
func (Ticket) TableName() string {
	return "tickets"
}

func (t *Ticket) IsGroup() bool {
	return t.Role == string(RoleGroup)
}

func (t *Ticket) IsIndividual() bool {
	return t.Role == string(RoleIndividual)
}

func (t *Ticket) IsCancelled() bool {
	return t.Status == string(StatusCancelled)
}

func (t *Ticket) IsFullyAdmitted() bool {
	return t.AdmittedCount >= t.TotalPersons
}

// Remaining is the capacity this credential can still admit.
func (t *Ticket) Remaining() int {
	remaining := t.TotalPersons - t.AdmittedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ChildOf reports whether t is an individual child of the given group ticket.
func (t *Ticket) ChildOf(group *Ticket) bool {
	return t.IsIndividual() && t.GroupID != nil && *t.GroupID == group.ID
}

// SetAdmitted applies a new admitted count and re-derives the status.
// Cancelled tickets keep their terminal status.
func (t *Ticket) SetAdmitted(count int) {
	if t.IsCancelled() {
		return
	}
	if count < 0 {
		count = 0
	}
	if count > t.TotalPersons {
		count = t.TotalPersons
	}
	t.AdmittedCount = count
	t.Status = string(StatusForCount(count, t.TotalPersons))
	t.UpdatedAt = time.Now()
}

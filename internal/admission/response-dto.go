package admission

import (
	"gatekeeper/internal/bookings"
	"gatekeeper/internal/checkins"
)

// Scan outcome labels. "partial" means the credential can still admit more
// persons, "completed" means it is exhausted.
const (
	OutcomePartial   = "partial"
	OutcomeCompleted = "completed"
)

// ScanResponse reports one successful admission.
type ScanResponse struct {
	Role               string           `json:"role"`
	TotalPersons       int              `json:"total_persons"`
	PreviouslyAdmitted int              `json:"previously_admitted"`
	NowAdmitted        int              `json:"now_admitted"`
	Remaining          int              `json:"remaining"`
	Status             string           `json:"status"`
	Booking            bookings.Summary `json:"booking"`
}

// StatusResponse is the read-only admission snapshot for one credential,
// history ordered newest-first.
type StatusResponse struct {
	Token         string                  `json:"token"`
	Role          string                  `json:"role"`
	TotalPersons  int                     `json:"total_persons"`
	AdmittedCount int                     `json:"admitted_count"`
	Remaining     int                     `json:"remaining"`
	Status        string                  `json:"status"`
	SeatLabel     string                  `json:"seat_label,omitempty"`
	Booking       bookings.Summary        `json:"booking"`
	History       []checkins.HistoryEntry `json:"history"`
}

package bookings

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusRefunded  Status = "REFUNDED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// CanAdmit reports whether tickets of a booking in this status may be
// scanned. Only confirmed bookings admit.
func (s Status) CanAdmit() bool {
	return s == StatusConfirmed
}

func (s Status) CanBeCancelled() bool {
	return s == StatusPending || s == StatusConfirmed
}

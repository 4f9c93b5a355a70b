package tickets

// Role distinguishes a one-person credential from a master credential that
// bundles several individual tickets of the same booking.
type Role string

const (
	RoleIndividual Role = "INDIVIDUAL"
	RoleGroup      Role = "GROUP"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleIndividual, RoleGroup:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

type Status string

const (
	StatusValid             Status = "VALID"
	StatusPartiallyAdmitted Status = "PARTIALLY_ADMITTED"
	StatusAdmitted          Status = "ADMITTED"
	StatusCancelled         Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusValid, StatusPartiallyAdmitted, StatusAdmitted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further admission is possible from this
// status. ADMITTED is terminal for the normal flow, CANCELLED always.
func (s Status) IsTerminal() bool {
	return s == StatusAdmitted || s == StatusCancelled
}

// StatusForCount derives a ticket status from its counters. CANCELLED is
// externally imposed and never derived here.
func StatusForCount(admitted, total int) Status {
	switch {
	case admitted <= 0:
		return StatusValid
	case admitted < total:
		return StatusPartiallyAdmitted
	default:
		return StatusAdmitted
	}
}

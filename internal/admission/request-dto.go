package admission

// ScanRequest is the body of POST /admission/scan. PersonsEntering is only
// meaningful for group tickets: how many of the party are entering now.
// When absent the engine admits every not-yet-admitted member.
type ScanRequest struct {
	Token           string `json:"token" binding:"required,min=1"`
	PersonsEntering *int   `json:"persons_entering,omitempty" binding:"omitempty,gt=0"`
}

func (r *ScanRequest) requestedPersons() int {
	if r.PersonsEntering == nil {
		return 0
	}
	return *r.PersonsEntering
}

package admission

import (
	"fmt"
	"net/http"
)

// Kind identifies one outcome of the scan error taxonomy. Kinds are stable
// wire values; the calling terminal branches on them.
type Kind string

const (
	KindInvalidCredential   Kind = "INVALID_CREDENTIAL"
	KindBookingNotConfirmed Kind = "BOOKING_NOT_CONFIRMED"
	KindBookingCancelled    Kind = "BOOKING_CANCELLED"
	KindBookingRefunded     Kind = "BOOKING_REFUNDED"
	KindTicketCancelled     Kind = "TICKET_CANCELLED"
	KindAlreadyAdmitted     Kind = "ALREADY_ADMITTED"
	KindGroupFullyAdmitted  Kind = "GROUP_FULLY_ADMITTED"
	KindValidation          Kind = "VALIDATION_FAILED"
	KindInternal            Kind = "INTERNAL"
)

// HTTPStatus maps a kind to its transport status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidCredential:
		return http.StatusNotFound
	case KindBookingNotConfirmed, KindBookingCancelled, KindBookingRefunded:
		return http.StatusForbidden
	case KindAlreadyAdmitted:
		return http.StatusConflict
	case KindGroupFullyAdmitted, KindTicketCancelled:
		return http.StatusGone
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether the same request may be retried as-is. True
// means nothing happened (not found, bad input, transient failure); false
// means the credential is in a state that will keep rejecting it, so the
// terminal should escalate instead of retrying.
func (k Kind) Retryable() bool {
	switch k {
	case KindInvalidCredential, KindValidation, KindInternal:
		return true
	}
	return false
}

// ScanError is a rejected scan. CheckedIn/Total/Remaining give the staff
// user enough context to act on a state conflict; they are zero for kinds
// where no ticket was resolved.
type ScanError struct {
	Kind      Kind   `json:"error_kind"`
	Message   string `json:"message"`
	CheckedIn int    `json:"checked_in,omitempty"`
	Total     int    `json:"total,omitempty"`
	Remaining int    `json:"remaining,omitempty"`
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newScanError(kind Kind, format string, args ...interface{}) *ScanError {
	return &ScanError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

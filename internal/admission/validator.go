package admission

import (
	"gatekeeper/internal/bookings"
	"gatekeeper/internal/tickets"
)

// ValidateScan decides whether a resolved ticket may be admitted. It is
// pure: no side effects, no storage access. Booking-level conflicts take
// precedence over ticket-level state.
//
// The result is advisory when called outside the booking lock — state can
// change between validation and commit — so the scan path re-validates on
// the locked snapshot before writing.
func ValidateScan(ticket *tickets.Ticket, booking *bookings.Booking) *ScanError {
	if ticket == nil {
		return newScanError(KindInvalidCredential, "no ticket matches the scanned credential")
	}

	switch bookings.Status(booking.Status) {
	case bookings.StatusCancelled:
		return newScanError(KindBookingCancelled, "booking %s is cancelled", booking.Reference)
	case bookings.StatusRefunded:
		return newScanError(KindBookingRefunded, "booking %s was refunded", booking.Reference)
	case bookings.StatusConfirmed:
		// admissible
	default:
		return newScanError(KindBookingNotConfirmed, "booking %s is not confirmed yet", booking.Reference)
	}

	if ticket.IsCancelled() {
		return newScanError(KindTicketCancelled, "ticket %s is cancelled", ticket.Token)
	}

	if ticket.IsFullyAdmitted() {
		kind := KindAlreadyAdmitted
		msg := "ticket has already been used for admission"
		if ticket.IsGroup() {
			kind = KindGroupFullyAdmitted
			msg = "all persons of this group ticket have been admitted"
		}
		return &ScanError{
			Kind:      kind,
			Message:   msg,
			CheckedIn: ticket.AdmittedCount,
			Total:     ticket.TotalPersons,
			Remaining: 0,
		}
	}

	return nil
}

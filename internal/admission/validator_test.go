package admission

import (
	"testing"

	"gatekeeper/internal/bookings"
	"gatekeeper/internal/tickets"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmedBooking() *bookings.Booking {
	return &bookings.Booking{
		ID:        uuid.New(),
		Reference: "BK-TEST-0001",
		EventName: "Test Event",
		Status:    string(bookings.StatusConfirmed),
	}
}

func TestValidateScanNilTicket(t *testing.T) {
	scanErr := ValidateScan(nil, confirmedBooking())
	require.NotNil(t, scanErr)
	assert.Equal(t, KindInvalidCredential, scanErr.Kind)
}

func TestValidateScanBookingStates(t *testing.T) {
	cases := []struct {
		status string
		kind   Kind
	}{
		{string(bookings.StatusCancelled), KindBookingCancelled},
		{string(bookings.StatusRefunded), KindBookingRefunded},
		{string(bookings.StatusPending), KindBookingNotConfirmed},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			booking := confirmedBooking()
			booking.Status = tc.status
			ticket := newIndividual(booking.ID, 0)

			scanErr := ValidateScan(ticket, booking)
			require.NotNil(t, scanErr)
			assert.Equal(t, tc.kind, scanErr.Kind)
		})
	}
}

func TestValidateScanBookingStateTakesPrecedence(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = string(bookings.StatusCancelled)

	// Even a fully admitted ticket reports the booking conflict first.
	ticket := newIndividual(booking.ID, 0)
	ticket.SetAdmitted(1)

	scanErr := ValidateScan(ticket, booking)
	require.NotNil(t, scanErr)
	assert.Equal(t, KindBookingCancelled, scanErr.Kind)
}

func TestValidateScanCancelledTicket(t *testing.T) {
	booking := confirmedBooking()
	ticket := newIndividual(booking.ID, 0)
	ticket.Status = string(tickets.StatusCancelled)

	scanErr := ValidateScan(ticket, booking)
	require.NotNil(t, scanErr)
	assert.Equal(t, KindTicketCancelled, scanErr.Kind)
}

func TestValidateScanAdmittedIndividual(t *testing.T) {
	booking := confirmedBooking()
	ticket := newIndividual(booking.ID, 0)
	ticket.SetAdmitted(1)

	scanErr := ValidateScan(ticket, booking)
	require.NotNil(t, scanErr)
	assert.Equal(t, KindAlreadyAdmitted, scanErr.Kind)
	assert.Equal(t, 1, scanErr.CheckedIn)
	assert.Equal(t, 1, scanErr.Total)
	assert.Equal(t, 0, scanErr.Remaining)
}

func TestValidateScanFullGroup(t *testing.T) {
	booking := confirmedBooking()
	group := newGroup(booking.ID, 4)
	group.SetAdmitted(4)

	scanErr := ValidateScan(group, booking)
	require.NotNil(t, scanErr)
	assert.Equal(t, KindGroupFullyAdmitted, scanErr.Kind)
	assert.Equal(t, 4, scanErr.CheckedIn)
}

func TestValidateScanAllowsValidStates(t *testing.T) {
	booking := confirmedBooking()

	fresh := newIndividual(booking.ID, 0)
	assert.Nil(t, ValidateScan(fresh, booking))

	partial := newGroup(booking.ID, 4)
	partial.SetAdmitted(2)
	assert.Nil(t, ValidateScan(partial, booking))
}

func TestKindHTTPMapping(t *testing.T) {
	assert.Equal(t, 404, KindInvalidCredential.HTTPStatus())
	assert.Equal(t, 403, KindBookingCancelled.HTTPStatus())
	assert.Equal(t, 403, KindBookingRefunded.HTTPStatus())
	assert.Equal(t, 403, KindBookingNotConfirmed.HTTPStatus())
	assert.Equal(t, 409, KindAlreadyAdmitted.HTTPStatus())
	assert.Equal(t, 410, KindGroupFullyAdmitted.HTTPStatus())
	assert.Equal(t, 400, KindValidation.HTTPStatus())
	assert.Equal(t, 500, KindInternal.HTTPStatus())
}

func TestKindRetryable(t *testing.T) {
	assert.True(t, KindInvalidCredential.Retryable())
	assert.True(t, KindValidation.Retryable())
	assert.True(t, KindInternal.Retryable())

	assert.False(t, KindAlreadyAdmitted.Retryable())
	assert.False(t, KindGroupFullyAdmitted.Retryable())
	assert.False(t, KindBookingCancelled.Retryable())
}

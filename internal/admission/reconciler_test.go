package admission

import (
	"testing"

	"gatekeeper/internal/tickets"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndividual(bookingID uuid.UUID, seq int) *tickets.Ticket {
	return &tickets.Ticket{
		ID:           uuid.New(),
		Token:        uuid.New().String(),
		BookingID:    bookingID,
		Role:         string(tickets.RoleIndividual),
		TotalPersons: 1,
		Status:       string(tickets.StatusValid),
		IssueSeq:     seq,
	}
}

func newGroup(bookingID uuid.UUID, totalPersons int) *tickets.Ticket {
	return &tickets.Ticket{
		ID:           uuid.New(),
		Token:        uuid.New().String(),
		BookingID:    bookingID,
		Role:         string(tickets.RoleGroup),
		TotalPersons: totalPersons,
		Status:       string(tickets.StatusValid),
		IssueSeq:     0,
	}
}

// newParty builds a group ticket with n individual children in issue order,
// returning the full sibling slice (group first) as the booking snapshot.
func newParty(n int) (*tickets.Ticket, []*tickets.Ticket) {
	bookingID := uuid.New()
	group := newGroup(bookingID, n)

	siblings := []*tickets.Ticket{group}
	for i := 1; i <= n; i++ {
		child := newIndividual(bookingID, i)
		child.GroupID = &group.ID
		siblings = append(siblings, child)
	}
	return group, siblings
}

func children(siblings []*tickets.Ticket) []*tickets.Ticket {
	return siblings[1:]
}

func assertInvariants(t *testing.T, tks ...*tickets.Ticket) {
	t.Helper()
	for _, tk := range tks {
		assert.GreaterOrEqual(t, tk.AdmittedCount, 0)
		assert.LessOrEqual(t, tk.AdmittedCount, tk.TotalPersons)
		if tk.Status != string(tickets.StatusCancelled) {
			assert.Equal(t, string(tickets.StatusForCount(tk.AdmittedCount, tk.TotalPersons)), tk.Status)
		}
	}
}

func TestReconcileIndividualAdmitsOnePerson(t *testing.T) {
	ticket := newIndividual(uuid.New(), 0)

	rec, scanErr := Reconcile(ticket, []*tickets.Ticket{ticket}, 0)
	require.Nil(t, scanErr)

	assert.Equal(t, 1, rec.PersonsEntered)
	assert.Equal(t, 0, rec.PreviouslyAdmitted)
	assert.Equal(t, 1, ticket.AdmittedCount)
	assert.Equal(t, string(tickets.StatusAdmitted), ticket.Status)
	assert.Len(t, rec.Updated, 1)
	assertInvariants(t, ticket)
}

func TestReconcileIndividualRejectsWhenFull(t *testing.T) {
	ticket := newIndividual(uuid.New(), 0)
	ticket.SetAdmitted(1)

	rec, scanErr := Reconcile(ticket, []*tickets.Ticket{ticket}, 0)
	require.Nil(t, rec)
	require.NotNil(t, scanErr)

	assert.Equal(t, KindAlreadyAdmitted, scanErr.Kind)
	assert.Equal(t, 1, scanErr.CheckedIn)
	assert.Equal(t, 1, ticket.AdmittedCount)
}

func TestReconcileGroupPartialAdmission(t *testing.T) {
	group, siblings := newParty(4)

	rec, scanErr := Reconcile(group, siblings, 2)
	require.Nil(t, scanErr)

	assert.Equal(t, 2, rec.PersonsEntered)
	assert.Equal(t, 0, rec.PreviouslyAdmitted)
	assert.Equal(t, 2, group.AdmittedCount)
	assert.Equal(t, string(tickets.StatusPartiallyAdmitted), group.Status)

	// First two children in issuance order are consumed, the rest untouched.
	kids := children(siblings)
	assert.Equal(t, string(tickets.StatusAdmitted), kids[0].Status)
	assert.Equal(t, string(tickets.StatusAdmitted), kids[1].Status)
	assert.Equal(t, string(tickets.StatusValid), kids[2].Status)
	assert.Equal(t, string(tickets.StatusValid), kids[3].Status)

	// Group plus the two consumed children are flagged for persistence.
	assert.Len(t, rec.Updated, 3)
	assertInvariants(t, siblings...)
}

func TestReconcileGroupClampsToRemaining(t *testing.T) {
	group, siblings := newParty(4)

	_, scanErr := Reconcile(group, siblings, 2)
	require.Nil(t, scanErr)

	// Requesting 3 with only 2 remaining admits the remaining 2.
	rec, scanErr := Reconcile(group, siblings, 3)
	require.Nil(t, scanErr)

	assert.Equal(t, 2, rec.PersonsEntered)
	assert.Equal(t, 2, rec.PreviouslyAdmitted)
	assert.Equal(t, 4, group.AdmittedCount)
	assert.Equal(t, string(tickets.StatusAdmitted), group.Status)

	for _, kid := range children(siblings) {
		assert.Equal(t, string(tickets.StatusAdmitted), kid.Status)
	}
	assertInvariants(t, siblings...)
}

func TestReconcileGroupRejectsWhenExhausted(t *testing.T) {
	group, siblings := newParty(2)

	_, scanErr := Reconcile(group, siblings, 0)
	require.Nil(t, scanErr)
	require.Equal(t, 2, group.AdmittedCount)

	rec, scanErr := Reconcile(group, siblings, 1)
	require.Nil(t, rec)
	require.NotNil(t, scanErr)

	assert.Equal(t, KindGroupFullyAdmitted, scanErr.Kind)
	assert.Equal(t, 2, scanErr.CheckedIn)
	assert.Equal(t, 2, scanErr.Total)

	// Rejection mutates nothing.
	assert.Equal(t, 2, group.AdmittedCount)
	for _, kid := range children(siblings) {
		assert.Equal(t, string(tickets.StatusAdmitted), kid.Status)
	}
}

func TestReconcileGroupDefaultsToUnadmittedChildren(t *testing.T) {
	group, siblings := newParty(3)

	rec, scanErr := Reconcile(group, siblings, 0)
	require.Nil(t, scanErr)

	assert.Equal(t, 3, rec.PersonsEntered)
	assert.Equal(t, 3, group.AdmittedCount)
	for _, kid := range children(siblings) {
		assert.Equal(t, string(tickets.StatusAdmitted), kid.Status)
	}
}

func TestReconcileGroupSkipsDirectlyScannedChildren(t *testing.T) {
	group, siblings := newParty(4)

	// The second child entered with their own ticket before the master scan.
	kids := children(siblings)
	kids[1].SetAdmitted(1)

	rec, scanErr := Reconcile(group, siblings, 0)
	require.Nil(t, scanErr)

	// Children are the source of truth: one person is already in, so only
	// three more enter and nobody is counted twice.
	assert.Equal(t, 3, rec.PersonsEntered)
	assert.Equal(t, 1, rec.PreviouslyAdmitted)
	assert.Equal(t, 4, group.AdmittedCount)
	for _, kid := range kids {
		assert.Equal(t, string(tickets.StatusAdmitted), kid.Status)
	}
	assertInvariants(t, siblings...)
}

func TestReconcileGroupConsumesChildrenInIssuanceOrder(t *testing.T) {
	group, siblings := newParty(4)
	kids := children(siblings)

	_, scanErr := Reconcile(group, siblings, 1)
	require.Nil(t, scanErr)
	assert.Equal(t, string(tickets.StatusAdmitted), kids[0].Status)
	assert.Equal(t, string(tickets.StatusValid), kids[1].Status)

	_, scanErr = Reconcile(group, siblings, 1)
	require.Nil(t, scanErr)
	assert.Equal(t, string(tickets.StatusAdmitted), kids[1].Status)
	assert.Equal(t, string(tickets.StatusValid), kids[2].Status)
}

func TestReconcileGroupWithoutChildrenUsesOwnCounter(t *testing.T) {
	group := newGroup(uuid.New(), 3)

	rec, scanErr := Reconcile(group, []*tickets.Ticket{group}, 2)
	require.Nil(t, scanErr)

	assert.Equal(t, 2, rec.PersonsEntered)
	assert.Equal(t, 2, group.AdmittedCount)
	assert.Equal(t, string(tickets.StatusPartiallyAdmitted), group.Status)
	assert.Len(t, rec.Updated, 1)
}

func TestReconcileGroupIgnoresForeignSiblings(t *testing.T) {
	group, siblings := newParty(2)

	// An individual ticket of the same booking that is not part of the group
	// must never be consumed by the master scan.
	stray := newIndividual(group.BookingID, 99)
	siblings = append(siblings, stray)

	rec, scanErr := Reconcile(group, siblings, 2)
	require.Nil(t, scanErr)

	assert.Equal(t, 2, rec.PersonsEntered)
	assert.Equal(t, string(tickets.StatusValid), stray.Status)
	assert.Equal(t, 0, stray.AdmittedCount)
}

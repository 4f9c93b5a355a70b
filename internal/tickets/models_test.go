package tickets

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStatusForCount(t *testing.T) {
	assert.Equal(t, StatusValid, StatusForCount(0, 4))
	assert.Equal(t, StatusPartiallyAdmitted, StatusForCount(1, 4))
	assert.Equal(t, StatusPartiallyAdmitted, StatusForCount(3, 4))
	assert.Equal(t, StatusAdmitted, StatusForCount(4, 4))
	assert.Equal(t, StatusAdmitted, StatusForCount(1, 1))
}

func TestSetAdmittedClampsAndDerivesStatus(t *testing.T) {
	ticket := &Ticket{
		Role:         string(RoleGroup),
		TotalPersons: 4,
		Status:       string(StatusValid),
	}

	ticket.SetAdmitted(2)
	assert.Equal(t, 2, ticket.AdmittedCount)
	assert.Equal(t, string(StatusPartiallyAdmitted), ticket.Status)

	ticket.SetAdmitted(9)
	assert.Equal(t, 4, ticket.AdmittedCount)
	assert.Equal(t, string(StatusAdmitted), ticket.Status)

	ticket.SetAdmitted(-1)
	assert.Equal(t, 0, ticket.AdmittedCount)
	assert.Equal(t, string(StatusValid), ticket.Status)
}

func TestSetAdmittedPreservesCancelled(t *testing.T) {
	ticket := &Ticket{
		Role:         string(RoleIndividual),
		TotalPersons: 1,
		Status:       string(StatusCancelled),
	}

	ticket.SetAdmitted(1)
	assert.Equal(t, 0, ticket.AdmittedCount)
	assert.Equal(t, string(StatusCancelled), ticket.Status)
}

func TestChildOf(t *testing.T) {
	groupID := uuid.New()
	group := &Ticket{ID: groupID, Role: string(RoleGroup), TotalPersons: 2}

	child := &Ticket{Role: string(RoleIndividual), TotalPersons: 1, GroupID: &groupID}
	assert.True(t, child.ChildOf(group))

	orphan := &Ticket{Role: string(RoleIndividual), TotalPersons: 1}
	assert.False(t, orphan.ChildOf(group))

	otherID := uuid.New()
	foreign := &Ticket{Role: string(RoleIndividual), TotalPersons: 1, GroupID: &otherID}
	assert.False(t, foreign.ChildOf(group))
}

func TestRemaining(t *testing.T) {
	ticket := &Ticket{TotalPersons: 4, AdmittedCount: 1}
	assert.Equal(t, 3, ticket.Remaining())

	ticket.AdmittedCount = 4
	assert.Equal(t, 0, ticket.Remaining())

	// Drifted data never reports negative capacity.
	ticket.AdmittedCount = 5
	assert.Equal(t, 0, ticket.Remaining())
}

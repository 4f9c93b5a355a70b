package admission

import (
	"gatekeeper/internal/tickets"
)

// Reconciliation is the computed outcome of one admitted scan: the mutated
// tickets to persist and the counters the caller reports back.
type Reconciliation struct {
	Scanned            *tickets.Ticket
	Updated            []*tickets.Ticket
	PersonsEntered     int
	PreviouslyAdmitted int
}

// Reconcile computes the next admission state for a scanned ticket. It is a
// pure function of the snapshot it is given and must run inside the booking
// lock; siblings is every ticket of the booking in issuance order, scanned
// included. requested is the caller-supplied person count, 0 when absent.
//
// Individual scans admit exactly one person. Group scans admit up to the
// group's remaining capacity and consume un-admitted child tickets in
// issuance order, so a member who re-enters with their own ticket later is
// not counted twice.
func Reconcile(scanned *tickets.Ticket, siblings []*tickets.Ticket, requested int) (*Reconciliation, *ScanError) {
	if scanned.IsGroup() {
		return reconcileGroup(scanned, siblings, requested)
	}
	return reconcileIndividual(scanned)
}

func reconcileIndividual(ticket *tickets.Ticket) (*Reconciliation, *ScanError) {
	prev := ticket.AdmittedCount
	if ticket.Remaining() == 0 {
		return nil, &ScanError{
			Kind:      KindAlreadyAdmitted,
			Message:   "ticket has already been used for admission",
			CheckedIn: prev,
			Total:     ticket.TotalPersons,
		}
	}

	ticket.SetAdmitted(prev + 1)

	return &Reconciliation{
		Scanned:            ticket,
		Updated:            []*tickets.Ticket{ticket},
		PersonsEntered:     1,
		PreviouslyAdmitted: prev,
	}, nil
}

func reconcileGroup(group *tickets.Ticket, siblings []*tickets.Ticket, requested int) (*Reconciliation, *ScanError) {
	var children, unadmitted []*tickets.Ticket
	admittedByChildren := 0
	for _, t := range siblings {
		if !t.ChildOf(group) {
			continue
		}
		children = append(children, t)
		admittedByChildren += t.AdmittedCount
		if !t.IsFullyAdmitted() && !t.IsCancelled() {
			unadmitted = append(unadmitted, t)
		}
	}

	// Children are the source of truth for how many persons the group has
	// left; the stored group counter is only a cached projection of them.
	prev := group.AdmittedCount
	remaining := group.Remaining()
	if len(children) > 0 {
		prev = admittedByChildren
		remaining = group.TotalPersons - admittedByChildren
		if remaining > len(unadmitted) {
			remaining = len(unadmitted)
		}
		if remaining < 0 {
			remaining = 0
		}
	}

	if requested <= 0 {
		if len(unadmitted) > 0 {
			requested = len(unadmitted)
		} else {
			requested = remaining
		}
	}

	entering := requested
	if entering > remaining {
		entering = remaining
	}

	if entering <= 0 {
		return nil, &ScanError{
			Kind:      KindGroupFullyAdmitted,
			Message:   "all persons of this group ticket have been admitted",
			CheckedIn: prev,
			Total:     group.TotalPersons,
		}
	}

	updated := []*tickets.Ticket{group}

	// Consume children first-issued-first: a ticket used through the master
	// scan counts as fully used, not partially incremented.
	for i := 0; i < entering && i < len(unadmitted); i++ {
		child := unadmitted[i]
		child.SetAdmitted(child.TotalPersons)
		updated = append(updated, child)
	}

	group.SetAdmitted(prev + entering)

	return &Reconciliation{
		Scanned:            group,
		Updated:            updated,
		PersonsEntered:     entering,
		PreviouslyAdmitted: prev,
	}, nil
}

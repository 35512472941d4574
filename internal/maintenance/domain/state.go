// Package domain holds the maintenance lifecycle state machine. The status
// column is the single source of truth for a request's position in the
// lifecycle; the cancellation booleans on the record are audit metadata only.
package domain

// Status is the lifecycle state of a maintenance request.
type Status string

const (
	// StatusPending is the initial state: created, no vendor yet.
	StatusPending Status = "PENDING"
	// StatusAssigned means a vendor accepted the offer.
	StatusAssigned Status = "ASSIGNED"
	// StatusCompleted is terminal; only reachable after payment completed.
	StatusCompleted Status = "COMPLETED"
	// StatusCancellationRequest means the tenant asked to cancel and the
	// assigned vendor's consent is outstanding.
	StatusCancellationRequest Status = "CANCELLATION_REQUEST"
	// StatusCancel is terminal; reached when the vendor consents.
	StatusCancel Status = "CANCEL"
)

// DecisionStatus is the landlord's decision on a request routed to them.
type DecisionStatus string

const (
	DecisionPending  DecisionStatus = "PENDING"
	DecisionApproved DecisionStatus = "APPROVED"
	DecisionDeclined DecisionStatus = "DECLINED"
)

// PaymentStatus tracks the funds transfer gating completion.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
)

// transitions is the full set of legal state changes. A tenant may raise a
// cancellation request before or after a vendor is assigned; everything else
// follows the single forward path.
var transitions = map[Status][]Status{
	StatusPending:             {StatusAssigned, StatusCancellationRequest},
	StatusAssigned:            {StatusCompleted, StatusCancellationRequest},
	StatusCancellationRequest: {StatusCancel},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusCompleted, StatusCancellationRequest, StatusCancel:
		return true
	}
	return false
}

package resolver

import "github.com/m04kA/yakidesk/internal/domain"

// ActionKind is the decision taken for a booking request
type ActionKind string

const (
	ActionCreate          ActionKind = "create"
	ActionCreateAndCancel ActionKind = "create_and_cancel"
	ActionReject          ActionKind = "reject"
)

// RejectReason explains an ActionReject
type RejectReason string

const (
	ReasonSlotTaken       RejectReason = "slot_taken"
	ReasonUnauthenticated RejectReason = "unauthenticated"
	ReasonInvalidSlot     RejectReason = "invalid_slot"
	ReasonUnknownDesk     RejectReason = "unknown_desk"
)

// Action is the outcome of ResolveBooking. It is a plan, nothing is applied yet.
type Action struct {
	Kind ActionKind

	// Booking is the booking to create for ActionCreate and ActionCreateAndCancel
	Booking *domain.Booking

	// Superseded are the bookings to delete before Booking is created (ActionCreateAndCancel)
	Superseded []*domain.Booking

	Reason RejectReason

	// Conflict is the booking holding the slot when Reason is ReasonSlotTaken
	Conflict *domain.Booking
}

// SupersededBookingIDs returns ids of the bookings the action deletes, in deletion order
func (a Action) SupersededBookingIDs() []string {
	ids := make([]string, 0, len(a.Superseded))
	for _, b := range a.Superseded {
		ids = append(ids, b.ID)
	}
	return ids
}

// IsReject returns true for ActionReject
func (a Action) IsReject() bool {
	return a.Kind == ActionReject
}

// CancelKind is the decision taken for a cancel request
type CancelKind string

const (
	CancelDelete          CancelKind = "delete"
	CancelForbidden       CancelKind = "forbidden"
	CancelUnauthenticated CancelKind = "unauthenticated"
)

// CancelDecision is the outcome of ResolveCancel
type CancelDecision struct {
	Kind      CancelKind
	BookingID string
	// ByOverride is true when the actor deletes a booking of another user
	ByOverride bool
}

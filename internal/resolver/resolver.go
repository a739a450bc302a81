// Package resolver decides what to do with a booking or cancel request
// given the actor and a snapshot of the existing bookings.
package resolver

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/yakidesk/internal/availability"
	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/pkg/types"
)

// Resolver holds only the id and clock sources for new bookings
type Resolver struct {
	newID func() string
	now   func() time.Time
}

// Option configures a Resolver
type Option func(*Resolver)

// WithIDGenerator replaces the uuid generator
func WithIDGenerator(gen func() string) Option {
	return func(r *Resolver) {
		r.newID = gen
	}
}

// WithClock replaces time.Now for CreatedAt of new bookings
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

func New(opts ...Option) *Resolver {
	r := &Resolver{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveBooking decides how to handle a request for the slot on the desk and date.
//
// No conflict: Create for any authenticated actor.
// Conflict and actor can override: CreateAndCancel, the conflicting bookings are deleted first.
// Conflict otherwise: Reject with ReasonSlotTaken.
func (r *Resolver) ResolveBooking(
	actor domain.Actor,
	desk *domain.Desk,
	date types.DateString,
	slot domain.TimeSlot,
	bookings []*domain.Booking,
) Action {
	if !actor.IsAuthenticated() {
		return Action{Kind: ActionReject, Reason: ReasonUnauthenticated}
	}
	if !slot.IsValid() {
		return Action{Kind: ActionReject, Reason: ReasonInvalidSlot}
	}
	if desk == nil {
		return Action{Kind: ActionReject, Reason: ReasonUnknownDesk}
	}

	conflicts := availability.FindConflicts(bookings, desk.ID, date, slot)
	if len(conflicts) == 0 {
		return Action{
			Kind:    ActionCreate,
			Booking: r.newBooking(actor, desk, date, slot),
		}
	}

	if !actor.CanOverride() {
		return Action{
			Kind:     ActionReject,
			Reason:   ReasonSlotTaken,
			Conflict: conflicts[0],
		}
	}

	return Action{
		Kind:       ActionCreateAndCancel,
		Booking:    r.newBooking(actor, desk, date, slot),
		Superseded: conflicts,
	}
}

func (r *Resolver) newBooking(actor domain.Actor, desk *domain.Desk, date types.DateString, slot domain.TimeSlot) *domain.Booking {
	return &domain.Booking{
		ID:        r.newID(),
		DeskID:    desk.ID,
		UserID:    actor.UserID,
		Date:      date,
		TimeSlot:  slot,
		CreatedAt: r.now().UTC(),
	}
}

// ResolveCancel decides whether the actor may delete the booking.
// The owner and an overriding actor may; anybody else is forbidden.
func ResolveCancel(actor domain.Actor, booking *domain.Booking) CancelDecision {
	if !actor.IsAuthenticated() {
		return CancelDecision{Kind: CancelUnauthenticated, BookingID: booking.ID}
	}
	if booking.IsOwnedBy(actor.UserID) {
		return CancelDecision{Kind: CancelDelete, BookingID: booking.ID}
	}
	if actor.CanOverride() {
		return CancelDecision{Kind: CancelDelete, BookingID: booking.ID, ByOverride: true}
	}
	return CancelDecision{Kind: CancelForbidden, BookingID: booking.ID}
}

package resolver

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/yakidesk/internal/availability"
	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/pkg/types"
)

const testDate = types.DateString("2026-05-12")

var (
	desk1 = &domain.Desk{ID: "D1", Label: "Desk 1"}
	alice = domain.Actor{UserID: "alice", Name: "Alice"}
	bob   = domain.Actor{UserID: "bob", Name: "Bob"}
	root  = domain.Actor{UserID: "admin", Name: "Admin", Root: true}
)

func newTestResolver() *Resolver {
	seq := 0
	fixed := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return New(
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("new-%d", seq)
		}),
		WithClock(func() time.Time { return fixed }),
	)
}

func TestResolveBooking_FreeSlot(t *testing.T) {
	r := newTestResolver()

	action := r.ResolveBooking(alice, desk1, testDate, domain.SlotMorning, nil)

	require.Equal(t, ActionCreate, action.Kind)
	assert.Equal(t, "new-1", action.Booking.ID)
	assert.Equal(t, "alice", action.Booking.UserID)
	assert.Equal(t, "D1", action.Booking.DeskID)
	assert.Equal(t, testDate, action.Booking.Date)
	assert.Equal(t, domain.SlotMorning, action.Booking.TimeSlot)
	assert.Empty(t, action.Superseded)
}

func TestResolveBooking_NonRootConflict(t *testing.T) {
	r := newTestResolver()
	existing := &domain.Booking{ID: "b1", DeskID: "D1", UserID: "alice", Date: testDate, TimeSlot: domain.SlotMorning}

	action := r.ResolveBooking(bob, desk1, testDate, domain.SlotFullDay, []*domain.Booking{existing})

	require.True(t, action.IsReject())
	assert.Equal(t, ReasonSlotTaken, action.Reason)
	assert.Same(t, existing, action.Conflict)
	assert.Nil(t, action.Booking)
}

func TestResolveBooking_RootOverride(t *testing.T) {
	r := newTestResolver()
	existing := &domain.Booking{ID: "b1", DeskID: "D1", UserID: "alice", Date: testDate, TimeSlot: domain.SlotAfternoon}

	action := r.ResolveBooking(root, desk1, testDate, domain.SlotAfternoon, []*domain.Booking{existing})

	require.Equal(t, ActionCreateAndCancel, action.Kind)
	assert.Equal(t, []string{"b1"}, action.SupersededBookingIDs())
	assert.Equal(t, "admin", action.Booking.UserID)
	assert.Equal(t, domain.SlotAfternoon, action.Booking.TimeSlot)
}

func TestResolveBooking_RootFullDayOverTwoHalves(t *testing.T) {
	r := newTestResolver()
	bookings := []*domain.Booking{
		{ID: "b1", DeskID: "D1", UserID: "alice", Date: testDate, TimeSlot: domain.SlotMorning},
		{ID: "b2", DeskID: "D1", UserID: "bob", Date: testDate, TimeSlot: domain.SlotAfternoon},
	}

	action := r.ResolveBooking(root, desk1, testDate, domain.SlotFullDay, bookings)

	require.Equal(t, ActionCreateAndCancel, action.Kind)
	assert.Equal(t, []string{"b1", "b2"}, action.SupersededBookingIDs())
}

func TestResolveBooking_Unauthenticated(t *testing.T) {
	r := newTestResolver()

	action := r.ResolveBooking(domain.Anonymous, desk1, testDate, domain.SlotMorning, nil)

	require.True(t, action.IsReject())
	assert.Equal(t, ReasonUnauthenticated, action.Reason)
}

func TestResolveBooking_InvalidSlot(t *testing.T) {
	r := newTestResolver()

	action := r.ResolveBooking(alice, desk1, testDate, domain.TimeSlot("evening"), nil)

	require.True(t, action.IsReject())
	assert.Equal(t, ReasonInvalidSlot, action.Reason)
}

func TestResolveBooking_NilDesk(t *testing.T) {
	r := newTestResolver()

	action := r.ResolveBooking(alice, nil, testDate, domain.SlotMorning, nil)

	require.True(t, action.IsReject())
	assert.Equal(t, ReasonUnknownDesk, action.Reason)
	assert.Nil(t, action.Booking)
}

func TestResolveCancel(t *testing.T) {
	b := &domain.Booking{ID: "b1", DeskID: "D1", UserID: "alice", Date: testDate, TimeSlot: domain.SlotMorning}

	tests := []struct {
		name     string
		actor    domain.Actor
		want     CancelKind
		override bool
	}{
		{name: "owner", actor: alice, want: CancelDelete},
		{name: "root", actor: root, want: CancelDelete, override: true},
		{name: "other user", actor: bob, want: CancelForbidden},
		{name: "anonymous", actor: domain.Anonymous, want: CancelUnauthenticated},
		{name: "root flag without identity", actor: domain.Actor{Root: true}, want: CancelUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := ResolveCancel(tt.actor, b)
			assert.Equal(t, tt.want, decision.Kind)
			assert.Equal(t, "b1", decision.BookingID)
			assert.Equal(t, tt.override, decision.ByOverride)
		})
	}
}

// Applying resolver decisions in order never leaves two overlapping bookings in a cell.
func TestResolver_InvariantHoldsOverRandomSequences(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	r := New()

	actors := []domain.Actor{alice, bob, root, {UserID: "carol"}}
	desks := []*domain.Desk{{ID: "D1"}, {ID: "D2"}, {ID: "D3"}}
	dates := []types.DateString{"2026-05-11", "2026-05-12"}
	slots := domain.AllTimeSlots()

	for run := 0; run < 50; run++ {
		var store []*domain.Booking

		for step := 0; step < 200; step++ {
			actor := actors[rnd.Intn(len(actors))]

			if len(store) > 0 && rnd.Intn(4) == 0 {
				target := store[rnd.Intn(len(store))]
				decision := ResolveCancel(actor, target)
				if decision.Kind == CancelDelete {
					store = removeBooking(store, decision.BookingID)
				}
				continue
			}

			desk := desks[rnd.Intn(len(desks))]
			date := dates[rnd.Intn(len(dates))]
			slot := slots[rnd.Intn(len(slots))]

			action := r.ResolveBooking(actor, desk, date, slot, store)
			switch action.Kind {
			case ActionCreate:
				store = append(store, action.Booking)
			case ActionCreateAndCancel:
				for _, id := range action.SupersededBookingIDs() {
					store = removeBooking(store, id)
				}
				store = append(store, action.Booking)
			}

			require.Empty(t, availability.FindViolations(store), "run %d step %d", run, step)
		}
	}
}

func removeBooking(store []*domain.Booking, id string) []*domain.Booking {
	out := store[:0]
	for _, b := range store {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}

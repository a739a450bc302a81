package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/pkg/types"
)

const testDate = types.DateString("2026-05-12")

func booking(id, deskID, userID string, date types.DateString, slot domain.TimeSlot) *domain.Booking {
	return &domain.Booking{ID: id, DeskID: deskID, UserID: userID, Date: date, TimeSlot: slot}
}

func TestAvailableSlots_MorningBooked(t *testing.T) {
	bookings := []*domain.Booking{booking("b1", "D1", "alice", testDate, domain.SlotMorning)}

	got := AvailableSlots("D1", testDate, bookings)

	assert.Equal(t, []domain.TimeSlot{domain.SlotAfternoon}, got)
}

func TestAvailableSlots_FullDayBooked(t *testing.T) {
	bookings := []*domain.Booking{booking("b1", "D1", "alice", testDate, domain.SlotFullDay)}

	got := AvailableSlots("D1", testDate, bookings)

	assert.Empty(t, got)
}

func TestAvailableSlots_EmptyDesk(t *testing.T) {
	got := AvailableSlots("D1", testDate, nil)

	assert.Equal(t, domain.AllTimeSlots(), got)
}

func TestAvailableSlots_IgnoresOtherDesksAndDates(t *testing.T) {
	bookings := []*domain.Booking{
		booking("b1", "D2", "alice", testDate, domain.SlotFullDay),
		booking("b2", "D1", "bob", "2026-05-13", domain.SlotFullDay),
	}

	got := AvailableSlots("D1", testDate, bookings)

	assert.Equal(t, domain.AllTimeSlots(), got)
}

func TestSlotOptions_RootSeesAllSlots(t *testing.T) {
	full := booking("b1", "D1", "alice", testDate, domain.SlotFullDay)

	options := SlotOptions("D1", testDate, []*domain.Booking{full})

	require.Len(t, options, 3)
	for _, opt := range options {
		assert.True(t, opt.Booked, opt.Slot)
		assert.Same(t, full, opt.Booking)
		assert.Equal(t, opt.Slot.Label(), opt.Label)
	}
}

func TestSlotOptions_PartiallyBooked(t *testing.T) {
	morning := booking("b1", "D1", "alice", testDate, domain.SlotMorning)

	options := SlotOptions("D1", testDate, []*domain.Booking{morning})

	require.Len(t, options, 3)
	assert.True(t, options[0].Booked)
	assert.False(t, options[1].Booked)
	assert.Nil(t, options[1].Booking)
	assert.True(t, options[2].Booked)
	assert.Same(t, morning, options[2].Booking)
}

func TestFindConflict_Idempotent(t *testing.T) {
	bookings := []*domain.Booking{
		booking("b1", "D1", "alice", testDate, domain.SlotMorning),
		booking("b2", "D1", "bob", testDate, domain.SlotAfternoon),
	}

	first := FindConflict(bookings, "D1", testDate, domain.SlotFullDay)
	second := FindConflict(bookings, "D1", testDate, domain.SlotFullDay)

	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Equal(t, "b1", first.ID)
}

func TestFindConflicts_ReturnsAllOverlapping(t *testing.T) {
	bookings := []*domain.Booking{
		booking("b1", "D1", "alice", testDate, domain.SlotMorning),
		booking("b2", "D1", "bob", testDate, domain.SlotAfternoon),
		booking("b3", "D2", "carol", testDate, domain.SlotMorning),
	}

	got := FindConflicts(bookings, "D1", testDate, domain.SlotFullDay)

	require.Len(t, got, 2)
	assert.Equal(t, "b1", got[0].ID)
	assert.Equal(t, "b2", got[1].ID)
	assert.Empty(t, FindConflicts(bookings, "D3", testDate, domain.SlotFullDay))
}

// Every slot is either returned by AvailableSlots or has a conflict, never both.
func TestAvailableSlots_Complement(t *testing.T) {
	fixtures := [][]*domain.Booking{
		nil,
		{booking("b1", "D1", "u", testDate, domain.SlotMorning)},
		{booking("b1", "D1", "u", testDate, domain.SlotAfternoon)},
		{booking("b1", "D1", "u", testDate, domain.SlotFullDay)},
		{
			booking("b1", "D1", "u", testDate, domain.SlotMorning),
			booking("b2", "D1", "v", testDate, domain.SlotAfternoon),
		},
	}

	for _, bookings := range fixtures {
		available := AvailableSlots("D1", testDate, bookings)
		for _, slot := range domain.AllTimeSlots() {
			conflict := FindConflict(bookings, "D1", testDate, slot)
			assert.Equal(t, conflict == nil, containsSlot(available, slot), "slot %s", slot)
		}
	}
}

func TestFindViolations(t *testing.T) {
	valid := []*domain.Booking{
		booking("b1", "D1", "alice", testDate, domain.SlotMorning),
		booking("b2", "D1", "bob", testDate, domain.SlotAfternoon),
		booking("b3", "D2", "carol", testDate, domain.SlotFullDay),
	}
	assert.Empty(t, FindViolations(valid))

	broken := append(valid,
		booking("b4", "D2", "dave", testDate, domain.SlotMorning),
		booking("b5", "D1", "erin", "2026-05-11", domain.SlotMorning),
		booking("b6", "D1", "fred", "2026-05-11", domain.SlotFullDay),
	)

	violations := FindViolations(broken)

	require.Len(t, violations, 2)
	assert.Equal(t, types.DateString("2026-05-11"), violations[0].Date)
	assert.Equal(t, "b5", violations[0].First.ID)
	assert.Equal(t, "b6", violations[0].Second.ID)
	assert.Equal(t, "D2", violations[1].DeskID)
	assert.Equal(t, "b3", violations[1].First.ID)
	assert.Equal(t, "b4", violations[1].Second.ID)
}

func containsSlot(slots []domain.TimeSlot, slot domain.TimeSlot) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

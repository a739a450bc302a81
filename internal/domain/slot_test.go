package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		a, b TimeSlot
		want bool
	}{
		{SlotMorning, SlotMorning, true},
		{SlotAfternoon, SlotAfternoon, true},
		{SlotFullDay, SlotFullDay, true},
		{SlotMorning, SlotAfternoon, false},
		{SlotMorning, SlotFullDay, true},
		{SlotAfternoon, SlotFullDay, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.a)+"/"+string(tt.b), func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
		})
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	for _, a := range AllTimeSlots() {
		for _, b := range AllTimeSlots() {
			assert.Equal(t, Overlaps(a, b), Overlaps(b, a), "%s vs %s", a, b)
		}
	}
}

func TestParseTimeSlot(t *testing.T) {
	slot, err := ParseTimeSlot("full-day")
	require.NoError(t, err)
	assert.Equal(t, SlotFullDay, slot)

	_, err = ParseTimeSlot("evening")
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestTimeSlot_Label(t *testing.T) {
	assert.Equal(t, "Morning (9 AM - 1 PM)", SlotMorning.Label())
	assert.Equal(t, "Full Day (9 AM - 6 PM)", SlotFullDay.Label())
}

package domain

import "fmt"

// TimeSlot is one of the bookable parts of a day
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotFullDay   TimeSlot = "full-day"
)

// AllTimeSlots returns every slot in display order
func AllTimeSlots() []TimeSlot {
	return []TimeSlot{SlotMorning, SlotAfternoon, SlotFullDay}
}

// ParseTimeSlot converts a wire value into a TimeSlot
func ParseTimeSlot(s string) (TimeSlot, error) {
	slot := TimeSlot(s)
	if !slot.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeSlot, s)
	}
	return slot, nil
}

// IsValid returns true for the three known slots
func (s TimeSlot) IsValid() bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotFullDay:
		return true
	default:
		return false
	}
}

// Label returns the human readable name with working hours
func (s TimeSlot) Label() string {
	switch s {
	case SlotMorning:
		return "Morning (9 AM - 1 PM)"
	case SlotAfternoon:
		return "Afternoon (2 PM - 6 PM)"
	case SlotFullDay:
		return "Full Day (9 AM - 6 PM)"
	default:
		return string(s)
	}
}

func (s TimeSlot) String() string {
	return string(s)
}

// Overlaps reports whether two slots cannot be held on the same desk and date.
// A slot always overlaps itself, full-day overlaps everything,
// morning and afternoon are disjoint.
func Overlaps(a, b TimeSlot) bool {
	if a == b {
		return true
	}
	return a == SlotFullDay || b == SlotFullDay
}

// Package availability answers whether a desk slot can be booked on a date.
// All functions are pure: they take an explicit snapshot of bookings and keep no state.
package availability

import (
	"sort"

	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/pkg/types"
)

// SlotOption is a slot as presented to a privileged actor
type SlotOption struct {
	Slot    domain.TimeSlot
	Label   string
	Booked  bool
	Booking *domain.Booking // the conflicting booking when Booked
}

// Violation is a pair of active bookings breaking the no-overlap invariant
type Violation struct {
	DeskID string
	Date   types.DateString
	First  *domain.Booking
	Second *domain.Booking
}

// FindConflict returns the first booking on the desk and date whose slot overlaps slot.
// The list may contain other desks and dates; they are ignored.
func FindConflict(bookings []*domain.Booking, deskID string, date types.DateString, slot domain.TimeSlot) *domain.Booking {
	for _, b := range bookings {
		if b == nil || !b.Occupies(deskID, date) {
			continue
		}
		if domain.Overlaps(b.TimeSlot, slot) {
			return b
		}
	}
	return nil
}

// FindConflicts returns every booking on the desk and date overlapping slot, in list order
func FindConflicts(bookings []*domain.Booking, deskID string, date types.DateString, slot domain.TimeSlot) []*domain.Booking {
	var conflicts []*domain.Booking
	for _, b := range bookings {
		if b == nil || !b.Occupies(deskID, date) {
			continue
		}
		if domain.Overlaps(b.TimeSlot, slot) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// IsAvailable returns true if no booking conflicts with the slot
func IsAvailable(bookings []*domain.Booking, deskID string, date types.DateString, slot domain.TimeSlot) bool {
	return FindConflict(bookings, deskID, date, slot) == nil
}

// AvailableSlots returns the slots that can still be booked on the desk and date.
// A full-day booking leaves nothing; any booking removes full-day.
func AvailableSlots(deskID string, date types.DateString, bookings []*domain.Booking) []domain.TimeSlot {
	available := make([]domain.TimeSlot, 0, len(domain.AllTimeSlots()))
	for _, slot := range domain.AllTimeSlots() {
		if IsAvailable(bookings, deskID, date, slot) {
			available = append(available, slot)
		}
	}
	return available
}

// SlotOptions returns all slots annotated with their booked state.
// Used for actors allowed to override, who must see taken slots too.
func SlotOptions(deskID string, date types.DateString, bookings []*domain.Booking) []SlotOption {
	options := make([]SlotOption, 0, len(domain.AllTimeSlots()))
	for _, slot := range domain.AllTimeSlots() {
		conflict := FindConflict(bookings, deskID, date, slot)
		options = append(options, SlotOption{
			Slot:    slot,
			Label:   slot.Label(),
			Booked:  conflict != nil,
			Booking: conflict,
		})
	}
	return options
}

// FindViolations reports every pair of overlapping bookings on the same desk and date.
// An empty result means the invariant holds for the snapshot.
func FindViolations(bookings []*domain.Booking) []Violation {
	type cell struct {
		deskID string
		date   types.DateString
	}

	groups := make(map[cell][]*domain.Booking)
	cells := make([]cell, 0)
	for _, b := range bookings {
		if b == nil {
			continue
		}
		key := cell{deskID: b.DeskID, date: b.Date}
		if _, ok := groups[key]; !ok {
			cells = append(cells, key)
		}
		groups[key] = append(groups[key], b)
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].date != cells[j].date {
			return cells[i].date < cells[j].date
		}
		return cells[i].deskID < cells[j].deskID
	})

	var violations []Violation
	for _, key := range cells {
		group := groups[key]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if domain.Overlaps(group[i].TimeSlot, group[j].TimeSlot) {
					violations = append(violations, Violation{
						DeskID: key.deskID,
						Date:   key.date,
						First:  group[i],
						Second: group[j],
					})
				}
			}
		}
	}
	return violations
}

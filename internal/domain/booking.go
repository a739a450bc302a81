package domain

import (
	"time"

	"github.com/m04kA/yakidesk/pkg/types"
)

// Booking is a reservation of one desk for one slot on one date
type Booking struct {
	ID        string
	DeskID    string
	UserID    string
	Date      types.DateString
	TimeSlot  TimeSlot
	CreatedAt time.Time
}

// IsOwnedBy returns true if the booking belongs to the user
func (b *Booking) IsOwnedBy(userID string) bool {
	return userID != "" && b.UserID == userID
}

// Occupies returns true if the booking is on the desk and date
func (b *Booking) Occupies(deskID string, date types.DateString) bool {
	return b.DeskID == deskID && b.Date == date
}

// BookingsFilter selects bookings by equality on the set fields
type BookingsFilter struct {
	Date   *types.DateString
	UserID *string
	DeskID *string
}

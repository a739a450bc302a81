package notifier

import "time"

// EventType тип события бронирования
type EventType string

const (
	EventBookingCreated    EventType = "booking.created"
	EventBookingOverridden EventType = "booking.overridden"
	EventBookingCancelled  EventType = "booking.cancelled"
)

// Event событие, публикуемое в канал бронирований
type Event struct {
	Type                EventType `json:"type"`
	BookingID           string    `json:"bookingId"`
	DeskID              string    `json:"deskId"`
	UserID              string    `json:"userId"`
	Date                string    `json:"date"`
	TimeSlot            string    `json:"timeSlot"`
	ActorID             string    `json:"actorId"`
	SupersededBookingID string    `json:"supersededBookingId,omitempty"`
	SupersededUserID    string    `json:"supersededUserId,omitempty"`
	OccurredAt          time.Time `json:"occurredAt"`
}

package get_available_slots

import (
	"github.com/m04kA/yakidesk/internal/service/bookings/models"
	getAvailableSlots "github.com/m04kA/yakidesk/internal/usecase/get_available_slots"
)

// SlotResponse слот стола
// Booked и Booking заполняются только в режиме переопределения
type SlotResponse struct {
	TimeSlot string                  `json:"timeSlot"`
	Label    string                  `json:"label"`
	Booked   bool                    `json:"booked"`
	Booking  *models.BookingResponse `json:"booking,omitempty"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	DeskID       string         `json:"deskId"`
	Date         string         `json:"date"`
	OverrideMode bool           `json:"overrideMode"`
	Slots        []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slot := SlotResponse{
			TimeSlot: string(s.TimeSlot),
			Label:    s.Label,
			Booked:   s.Booked,
		}
		if s.Booking != nil {
			slot.Booking = models.FromDomainBooking(s.Booking)
		}
		slots = append(slots, slot)
	}

	return &AvailableSlotsResponse{
		DeskID:       resp.DeskID,
		Date:         resp.Date.String(),
		OverrideMode: resp.OverrideMode,
		Slots:        slots,
	}
}

package models

import (
	"sort"
	"time"

	"github.com/m04kA/yakidesk/internal/availability"
	"github.com/m04kA/yakidesk/internal/domain"
)

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        string    `json:"id"`
	DeskID    string    `json:"deskId"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`     // "2026-05-12"
	TimeSlot  string    `json:"timeSlot"` // "morning"
	SlotLabel string    `json:"slotLabel"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// ViolationResponse пара пересекающихся бронирований в одной ячейке
type ViolationResponse struct {
	DeskID          string `json:"deskId"`
	Date            string `json:"date"`
	FirstBookingID  string `json:"firstBookingId"`
	SecondBookingID string `json:"secondBookingId"`
}

// DayBookingsResponse бронирования на дату
// Violations заполняется только для root
type DayBookingsResponse struct {
	Date       string              `json:"date"`
	Bookings   []BookingResponse   `json:"bookings"`
	Total      int                 `json:"total"`
	Violations []ViolationResponse `json:"violations,omitempty"`
}

// CancelResponse результат отмены
type CancelResponse struct {
	BookingID  string `json:"bookingId"`
	ByOverride bool   `json:"byOverride"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:        b.ID,
		DeskID:    b.DeskID,
		UserID:    b.UserID,
		Date:      b.Date.String(),
		TimeSlot:  string(b.TimeSlot),
		SlotLabel: b.TimeSlot.Label(),
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: out, Total: len(out)}
}

// FromViolations конвертирует нарушения инварианта
func FromViolations(violations []availability.Violation) []ViolationResponse {
	out := make([]ViolationResponse, 0, len(violations))
	for _, v := range violations {
		out = append(out, ViolationResponse{
			DeskID:          v.DeskID,
			Date:            v.Date.String(),
			FirstBookingID:  v.First.ID,
			SecondBookingID: v.Second.ID,
		})
	}
	return out
}

// SortByDateAndSlot сортирует бронирования по дате, затем по порядку слотов
func SortByDateAndSlot(bookings []*domain.Booking) {
	order := make(map[domain.TimeSlot]int, len(domain.AllTimeSlots()))
	for i, slot := range domain.AllTimeSlots() {
		order[slot] = i
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date.IsBefore(bookings[j].Date)
		}
		return order[bookings[i].TimeSlot] < order[bookings[j].TimeSlot]
	})
}

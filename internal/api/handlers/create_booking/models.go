package create_booking

import (
	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/internal/service/bookings/models"
	createBooking "github.com/m04kA/yakidesk/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	DeskID   string `json:"deskId"`
	Date     string `json:"date"`     // "2026-05-12"
	TimeSlot string `json:"timeSlot"` // "morning" | "afternoon" | "full-day"
}

// OperationResponse результат отдельной операции над хранилищем
type OperationResponse struct {
	Operation string `json:"operation"`
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Action     string                   `json:"action"`
	Created    bool                     `json:"created"`
	Booking    *models.BookingResponse  `json:"booking"`
	Superseded []models.BookingResponse `json:"superseded,omitempty"`
	Operations []OperationResponse      `json:"operations"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) *createBooking.Request {
	return &createBooking.Request{
		Actor:    actor,
		DeskID:   r.DeskID,
		Date:     r.Date,
		TimeSlot: r.TimeSlot,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	out := &CreateBookingResponse{
		Action:     string(resp.Action),
		Created:    resp.Created(),
		Operations: make([]OperationResponse, 0, len(resp.Operations)),
	}

	if resp.Booking != nil {
		out.Booking = models.FromDomainBooking(resp.Booking)
	}
	if len(resp.Superseded) > 0 {
		out.Superseded = models.FromDomainBookingList(resp.Superseded).Bookings
	}
	for _, op := range resp.Operations {
		out.Operations = append(out.Operations, OperationResponse{
			Operation: string(op.Operation),
			BookingID: op.BookingID,
			Status:    string(op.Status),
			Error:     op.Error,
		})
	}

	return out
}

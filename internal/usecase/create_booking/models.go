package create_booking

import (
	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/internal/resolver"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor    domain.Actor // Кто бронирует
	DeskID   string       // ID стола
	Date     string       // Дата в формате YYYY-MM-DD
	TimeSlot string       // morning | afternoon | full-day
}

// OperationKind тип операции над хранилищем
type OperationKind string

const (
	OperationDelete OperationKind = "delete"
	OperationCreate OperationKind = "create"
)

// OperationStatus состояние операции: pending -> confirmed | failed
type OperationStatus string

const (
	StatusPending   OperationStatus = "pending"
	StatusConfirmed OperationStatus = "confirmed"
	StatusFailed    OperationStatus = "failed"
)

// OperationResult результат отдельной операции над хранилищем
// При переопределении удаление и создание - независимые операции,
// каждая сообщает свой результат, откатов нет.
type OperationResult struct {
	Operation OperationKind
	BookingID string
	Status    OperationStatus
	Error     string
}

// Response модель ответа
type Response struct {
	Action     resolver.ActionKind
	Booking    *domain.Booking   // Новое бронирование
	Superseded []*domain.Booking // Вытесненные бронирования (только при переопределении)
	Operations []OperationResult
}

// Created возвращает true, если новое бронирование сохранено
func (r *Response) Created() bool {
	for _, op := range r.Operations {
		if op.Operation == OperationCreate {
			return op.Status == StatusConfirmed
		}
	}
	return false
}

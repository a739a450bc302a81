package get_available_slots

import (
	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/pkg/types"
)

// Request модель запроса на получение слотов стола
type Request struct {
	Actor  domain.Actor // Кто спрашивает (root видит занятые слоты)
	DeskID string       // ID стола
	Date   string       // Дата в формате YYYY-MM-DD
}

// Response модель ответа со слотами
type Response struct {
	DeskID       string
	Date         types.DateString
	OverrideMode bool   // true - в Slots все слоты с признаком занятости
	Slots        []Slot // Для обычного пользователя только свободные слоты
}

// Slot модель слота
type Slot struct {
	TimeSlot domain.TimeSlot
	Label    string
	Booked   bool
	Booking  *domain.Booking // Конфликтующее бронирование (только в OverrideMode)
}

package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	VendorID int64     // ID вендора
	Date     time.Time // Локальная календарная дата (без времени)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	VendorID int64     // ID вендора
	Date     time.Time // Запрошенная дата
	Timezone string    // Бизнес-таймзона, в которой вычислены локальные метки
	Slots    []Slot    // Свободные слоты в хронологическом порядке
}

// Slot свободный 30-минутный слот
type Slot struct {
	StartUTC   time.Time        // Начало слота (UTC) — источник истины
	LocalLabel types.TimeString // Локальное время "HH:MM" для отображения
}

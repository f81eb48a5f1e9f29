package domain

import "time"

// Slot grid constants
const (
	// SlotDurationMinutes фиксированная длительность слота
	SlotDurationMinutes = 30

	// BusinessOpenHour / BusinessCloseHour рабочие часы в локальном времени вендора
	// Слоты генерируются с 09:00 до 16:30 включительно (последний слот заканчивается в 17:00)
	BusinessOpenHour  = 9
	BusinessCloseHour = 17

	// SameDayLeadTimeMinutes минимальное время до начала бронирования,
	// если бронирование на сегодняшнюю локальную дату
	SameDayLeadTimeMinutes = 120
)

// SlotDuration длительность слота как time.Duration
const SlotDuration = SlotDurationMinutes * time.Minute

// DefaultTimezone бизнес-таймзона системы (единственная в текущем дизайне)
const DefaultTimezone = "Africa/Lagos"

// BuyerAnonymous плейсхолдер покупателя: бронирования анонимны
const BuyerAnonymous = "anonymous"

// Mock payment constants: фиксированная стоимость бронирования
const (
	PaymentAmount   = 50.0
	PaymentCurrency = "USD"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

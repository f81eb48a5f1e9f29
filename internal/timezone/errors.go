package timezone

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	// ErrUnknownTimezone возвращается, когда IANA таймзона не найдена
	ErrUnknownTimezone = errors.New("timezone: unknown timezone")

	// ErrTooLateToBook возвращается, когда бронирование нарушает минимальное
	// время до начала (lead time) для сегодняшней локальной даты
	ErrTooLateToBook = errors.New("timezone: too late to book this slot")
)

// LeadTimeError ошибка нарушения lead time с вычисленным минимально
// допустимым локальным временем начала
type LeadTimeError struct {
	NowLocal      types.TimeString
	MinStartLocal types.TimeString
}

// Error возвращает текст ошибки
func (e *LeadTimeError) Error() string {
	return fmt.Sprintf("booking must start at least %d hours from now: current local time %s, minimum start time %s",
		leadTimeHours, e.NowLocal, e.MinStartLocal)
}

// Unwrap позволяет errors.Is(err, ErrTooLateToBook)
func (e *LeadTimeError) Unwrap() error {
	return ErrTooLateToBook
}

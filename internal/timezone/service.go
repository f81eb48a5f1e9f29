// Package timezone содержит чистые функции конвертации между UTC и
// локальной бизнес-таймзоной вендора: генерация сетки слотов на день,
// форматирование локального времени и проверка lead time
package timezone

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const leadTimeHours = domain.SameDayLeadTimeMinutes / 60

// Service конвертирует между UTC и фиксированной локальной таймзоной
// Не имеет состояния, все методы детерминированы
type Service struct {
	loc *time.Location
}

// NewService создает сервис для указанной IANA таймзоны
func NewService(name string) (*Service, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownTimezone, name, err)
	}
	return &Service{loc: loc}, nil
}

// Location возвращает загруженную таймзону
func (s *Service) Location() *time.Location {
	return s.loc
}

// GenerateDaySlots генерирует полную сетку 30-минутных слотов на локальную
// календарную дату: рабочие часы 09:00–17:00, начала слотов 09:00–16:30.
// Каждое локальное время конвертируется в UTC с учетом правил DST таймзоны.
// Результат детерминирован: одинаковый вход всегда дает одинаковый выход.
func (s *Service) GenerateDaySlots(localDate time.Time) []time.Time {
	year, month, day := localDate.Date()

	slots := make([]time.Time, 0, (domain.BusinessCloseHour-domain.BusinessOpenHour)*60/domain.SlotDurationMinutes)
	for hour := domain.BusinessOpenHour; hour < domain.BusinessCloseHour; hour++ {
		for minute := 0; minute < 60; minute += domain.SlotDurationMinutes {
			local := time.Date(year, month, day, hour, minute, 0, 0, s.loc)
			slots = append(slots, local.UTC())
		}
	}

	return slots
}

// LocalClock форматирует UTC instant как локальное время "HH:MM"
// Используется только для отображения, не участвует в валидации
func (s *Service) LocalClock(utc time.Time) types.TimeString {
	return types.NewTimeString(utc.In(s.loc))
}

// ValidateLeadTime проверяет бизнес-правило минимального времени до начала:
// если локальная календарная дата начала совпадает с локальной датой now,
// бронирование должно начинаться не раньше чем через 2 часа (арифметика в
// локальном времени). Бронирования на будущие локальные даты не ограничены.
//
// Правило сравнивает именно календарные даты, а не скользящее 24-часовое окно:
// слот в 23:59 сегодня ограничен, слот в 00:01 завтра — нет. Это продуктовое
// решение, унаследованное от исходной системы.
func (s *Service) ValidateLeadTime(startUTC, now time.Time) error {
	startLocal := startUTC.In(s.loc)
	nowLocal := now.In(s.loc)

	if !sameLocalDate(startLocal, nowLocal) {
		return nil
	}

	minStart := nowLocal.Add(domain.SameDayLeadTimeMinutes * time.Minute)
	if startLocal.Before(minStart) {
		return &LeadTimeError{
			NowLocal:      types.NewTimeString(nowLocal),
			MinStartLocal: types.NewTimeString(minStart),
		}
	}

	return nil
}

// sameLocalDate проверяет, что два локальных времени относятся к одной календарной дате
func sameLocalDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

package timezone

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Africa/Lagos — UTC+1 круглый год, без переходов на летнее время
const testTimezone = "Africa/Lagos"

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(testTimezone)
	require.NoError(t, err)
	return svc
}

func TestNewService_UnknownTimezone(t *testing.T) {
	_, err := NewService("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestGenerateDaySlots(t *testing.T) {
	svc := newTestService(t)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	slots := svc.GenerateDaySlots(date)

	// Рабочие часы 09:00–17:00, шаг 30 минут: 16 слотов
	require.Len(t, slots, 16)

	// Первый слот 09:00 локального времени = 08:00 UTC (Lagos UTC+1)
	assert.Equal(t, time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC), slots[0])

	// Последний слот 16:30 локального времени = 15:30 UTC
	assert.Equal(t, time.Date(2026, 9, 15, 15, 30, 0, 0, time.UTC), slots[15])

	// Хронологический порядок с шагом ровно 30 минут
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 30*time.Minute, slots[i].Sub(slots[i-1]))
	}
}

func TestGenerateDaySlots_Deterministic(t *testing.T) {
	svc := newTestService(t)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	first := svc.GenerateDaySlots(date)
	second := svc.GenerateDaySlots(date)

	assert.Equal(t, first, second)
}

func TestLocalClock(t *testing.T) {
	svc := newTestService(t)

	// 08:00 UTC = 09:00 в Лагосе
	utc := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, types.TimeString("09:00"), svc.LocalClock(utc))
}

func TestValidateLeadTime(t *testing.T) {
	svc := newTestService(t)

	// "Сейчас" 10:00 локального времени (09:00 UTC)
	now := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		startUTC time.Time
		wantErr  bool
	}{
		{
			// 11:00 локального — меньше двух часов от "сейчас"
			name:     "same day inside lead time window rejected",
			startUTC: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
			wantErr:  true,
		},
		{
			// 12:00 локального — ровно два часа, граница разрешена
			name:     "same day exactly at boundary accepted",
			startUTC: time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC),
			wantErr:  false,
		},
		{
			// 16:30 локального — с запасом
			name:     "same day well past boundary accepted",
			startUTC: time.Date(2026, 9, 15, 15, 30, 0, 0, time.UTC),
			wantErr:  false,
		},
		{
			// 00:05 следующего локального дня: правило сравнивает календарные
			// даты, а не скользящее окно, поэтому ограничение не применяется
			name:     "next local day shortly after midnight accepted",
			startUTC: time.Date(2026, 9, 15, 23, 5, 0, 0, time.UTC),
			wantErr:  false,
		},
		{
			name:     "future date accepted",
			startUTC: time.Date(2026, 9, 20, 8, 0, 0, 0, time.UTC),
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateLeadTime(tt.startUTC, now)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTooLateToBook)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateLeadTime_ErrorCarriesComputedTimes(t *testing.T) {
	svc := newTestService(t)

	now := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)       // 10:00 в Лагосе
	startUTC := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC) // 11:00 в Лагосе

	err := svc.ValidateLeadTime(startUTC, now)
	require.Error(t, err)

	var leadErr *LeadTimeError
	require.True(t, errors.As(err, &leadErr))
	assert.Equal(t, types.TimeString("10:00"), leadErr.NowLocal)
	assert.Equal(t, types.TimeString("12:00"), leadErr.MinStartLocal)
}

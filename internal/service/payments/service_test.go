package payments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/payment"
)

type fakeLogger struct{}

func (l *fakeLogger) Info(format string, v ...interface{})  {}
func (l *fakeLogger) Warn(format string, v ...interface{})  {}
func (l *fakeLogger) Error(format string, v ...interface{}) {}

type fakePaymentRepo struct {
	byBookingID map[int64]*domain.Payment
	byRef       map[string]*domain.Payment
	nextID       int64
	createCalls  int
	failCreate   error
	onCreateFail func()
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		byBookingID: make(map[int64]*domain.Payment),
		byRef:       make(map[string]*domain.Payment),
		nextID:      1,
	}
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	r.createCalls++
	if r.failCreate != nil {
		if r.onCreateFail != nil {
			r.onCreateFail()
		}
		return nil, r.failCreate
	}
	if _, exists := r.byBookingID[payment.BookingID]; exists {
		return nil, paymentRepo.ErrPaymentAlreadyExists
	}

	created := *payment
	created.ID = r.nextID
	created.CreatedAt = time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	r.byBookingID[created.BookingID] = &created
	r.byRef[created.Ref] = &created
	r.nextID++
	return &created, nil
}

func (r *fakePaymentRepo) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	payment, ok := r.byBookingID[bookingID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return payment, nil
}

func (r *fakePaymentRepo) GetByRef(ctx context.Context, ref string) (*domain.Payment, error) {
	payment, ok := r.byRef[ref]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return payment, nil
}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return booking, nil
}

func newTestService() (*Service, *fakePaymentRepo, *fakeBookingRepo) {
	payments := newFakePaymentRepo()
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		10: {
			ID:           10,
			VendorID:     1,
			BuyerID:      domain.BuyerAnonymous,
			StartTimeUTC: time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC),
			EndTimeUTC:   time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC),
			Status:       domain.StatusPending,
		},
		11: {
			ID:     11,
			Status: domain.StatusPaid,
		},
	}}
	return NewService(payments, bookings, &fakeLogger{}), payments, bookings
}

func TestInitialize_CreatesPayment(t *testing.T) {
	svc, payments, _ := newTestService()

	resp, err := svc.Initialize(context.Background(), 10)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Ref, "pay_"))
	assert.Len(t, resp.Ref, len("pay_")+16)
	assert.Equal(t, string(domain.PaymentStatusPending), resp.Status)
	assert.Equal(t, domain.PaymentAmount, resp.Amount)
	assert.Equal(t, domain.PaymentCurrency, resp.Currency)
	assert.Equal(t, 1, payments.createCalls)
}

func TestInitialize_Idempotent(t *testing.T) {
	svc, payments, _ := newTestService()

	first, err := svc.Initialize(context.Background(), 10)
	require.NoError(t, err)

	second, err := svc.Initialize(context.Background(), 10)
	require.NoError(t, err)

	// Повторная инициализация возвращает тот же платеж без создания нового
	assert.Equal(t, first.Ref, second.Ref)
	assert.Equal(t, 1, payments.createCalls)
}

func TestInitialize_BookingNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Initialize(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestInitialize_BookingNotPending(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Initialize(context.Background(), 11)
	assert.ErrorIs(t, err, ErrBookingNotPending)
}

func TestInitialize_ConcurrentCreationReusesWinner(t *testing.T) {
	svc, payments, _ := newTestService()

	// Параллельная инициализация успевает первой: к моменту падения Create
	// платеж победителя уже закоммичен и виден по booking id
	winner := &domain.Payment{
		ID:        5,
		BookingID: 10,
		Ref:       "pay_winner1234567",
		Status:    domain.PaymentStatusPending,
	}
	payments.failCreate = paymentRepo.ErrPaymentAlreadyExists
	payments.onCreateFail = func() {
		payments.byBookingID[10] = winner
	}

	resp, err := svc.Initialize(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "pay_winner1234567", resp.Ref)
}

func TestGetByRef(t *testing.T) {
	svc, payments, _ := newTestService()

	created, err := svc.Initialize(context.Background(), 10)
	require.NoError(t, err)

	resp, err := svc.GetByRef(context.Background(), created.Ref)
	require.NoError(t, err)

	assert.Equal(t, created.Ref, resp.Ref)
	assert.Equal(t, int64(10), resp.BookingID)
	assert.Equal(t, string(domain.StatusPending), resp.Booking.Status)
	assert.Equal(t, payments.byRef[created.Ref].CreatedAt, resp.CreatedAt)
}

func TestGetByRef_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetByRef(context.Background(), "pay_missing")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

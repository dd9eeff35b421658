package cancel_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/reservation"
)

type fakeReservationRepo struct {
	reservation  *domain.Reservation
	getErr       error
	setErr       error
	cancelledID  int64
	cancelledAt  time.Time
	setCancelled bool
}

func (f *fakeReservationRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Reservation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.reservation == nil || f.reservation.ID != id {
		return nil, reservationRepo.ErrReservationNotFound
	}
	res := *f.reservation
	return &res, nil
}

func (f *fakeReservationRepo) SetCancelled(_ context.Context, id int64, at time.Time) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setCancelled = true
	f.cancelledID = id
	f.cancelledAt = at
	return nil
}

type fakePlatformRepo struct {
	platform *domain.Platform
	err      error
}

func (f *fakePlatformRepo) Get(_ context.Context) (*domain.Platform, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.platform, nil
}

type transfer struct {
	from   string
	to     string
	amount int64
}

type fakeLedger struct {
	transfers []transfer
	err       error
}

func (f *fakeLedger) Transfer(_ context.Context, from, to string, amount int64) error {
	if f.err != nil {
		return f.err
	}
	f.transfers = append(f.transfers, transfer{from: from, to: to, amount: amount})
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type publishedEvent struct {
	routingKey string
	event      interface{}
}

type fakePublisher struct {
	published []publishedEvent
}

func (f *fakePublisher) Publish(_ context.Context, routingKey string, event interface{}) error {
	f.published = append(f.published, publishedEvent{routingKey: routingKey, event: event})
	return nil
}

type fakeMetrics struct {
	transitions []string
	disbursed   map[string]int64
}

func (f *fakeMetrics) TransitionApplied(status string) {
	f.transitions = append(f.transitions, status)
}

func (f *fakeMetrics) Disbursed(leg string, amountUnits int64) {
	if f.disbursed == nil {
		f.disbursed = map[string]int64{}
	}
	f.disbursed[leg] += amountUnits
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc           *UseCase
	reservations *fakeReservationRepo
	ledger       *fakeLedger
	publisher    *fakePublisher
	metrics      *fakeMetrics
}

func newFixture(res *domain.Reservation, now time.Time) *fixture {
	reservations := &fakeReservationRepo{reservation: res}
	ledger := &fakeLedger{}
	publisher := &fakePublisher{}
	metrics := &fakeMetrics{}

	uc := NewUseCase(
		reservations,
		&fakePlatformRepo{platform: &domain.Platform{
			AdminWallet:    "wallet-admin",
			TreasuryWallet: "wallet-treasury",
		}},
		ledger,
		&fakeTxManager{},
		publisher,
		metrics,
		domain.DefaultPolicy(),
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	return &fixture{
		uc:           uc,
		reservations: reservations,
		ledger:       ledger,
		publisher:    publisher,
		metrics:      metrics,
	}
}

func confirmedReservation(appointment time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:               7,
		ClientWallet:     "wallet-client",
		SalonID:          3,
		SalonOwnerWallet: "wallet-owner",
		ServiceID:        1,
		ServiceName:      "Стрижка",
		AmountUnits:      1_000_000_000,
		AppointmentTime:  appointment,
		Status:           domain.StatusConfirmed,
	}
}

func TestExecute_PartialRefund(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(confirmedReservation(now.Add(30*time.Hour)), now)

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 7, CallerWallet: "wallet-client"})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, int64(800_000_000), resp.RefundUnits)
	assert.Equal(t, int64(197_000_000), resp.SalonFeeUnits)
	assert.Equal(t, int64(3_000_000), resp.AppCommissionUnits)

	// Все три ноги уходят с эскроу-счета и вычерпывают его до нуля
	require.Len(t, f.ledger.transfers, 3)
	var total int64
	for _, tr := range f.ledger.transfers {
		assert.Equal(t, "escrow:7", tr.from)
		total += tr.amount
	}
	assert.Equal(t, int64(1_000_000_000), total)
	assert.Equal(t, transfer{from: "escrow:7", to: "wallet-client", amount: 800_000_000}, f.ledger.transfers[0])
	assert.Equal(t, transfer{from: "escrow:7", to: "wallet-owner", amount: 197_000_000}, f.ledger.transfers[1])
	assert.Equal(t, transfer{from: "escrow:7", to: "wallet-treasury", amount: 3_000_000}, f.ledger.transfers[2])

	assert.True(t, f.reservations.setCancelled)
	assert.Equal(t, now, f.reservations.cancelledAt)
	require.Len(t, f.publisher.published, 1)
}

func TestExecute_FullRefundSkipsZeroLegs(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(confirmedReservation(now.Add(72*time.Hour)), now)

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 7, CallerWallet: "wallet-client"})

	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000_000), resp.RefundUnits)
	assert.Zero(t, resp.SalonFeeUnits)
	assert.Zero(t, resp.AppCommissionUnits)

	// Нулевые ноги не порождают переводов
	require.Len(t, f.ledger.transfers, 1)
	assert.Equal(t, transfer{from: "escrow:7", to: "wallet-client", amount: 1_000_000_000}, f.ledger.transfers[0])
}

func TestExecute_NotClient(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(confirmedReservation(now.Add(30*time.Hour)), now)

	for _, caller := range []string{"wallet-owner", "wallet-stranger"} {
		_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 7, CallerWallet: caller})

		assert.ErrorIs(t, err, ErrNotReservationClient, "caller=%s", caller)
	}
	assert.Empty(t, f.ledger.transfers)
	assert.False(t, f.reservations.setCancelled)
}

func TestExecute_AlreadyFinalized(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, status := range []domain.ReservationStatus{domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow} {
		res := confirmedReservation(now.Add(30 * time.Hour))
		res.Status = status
		f := newFixture(res, now)

		_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 7, CallerWallet: "wallet-client"})

		assert.ErrorIs(t, err, ErrAlreadyFinalized, "status=%s", status)
		assert.Empty(t, f.ledger.transfers, "status=%s", status)
	}
}

func TestExecute_StatusRaceDetectedOnUpdate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(confirmedReservation(now.Add(30*time.Hour)), now)
	f.reservations.setErr = reservationRepo.ErrInvalidStatus

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 7, CallerWallet: "wallet-client"})

	assert.ErrorIs(t, err, ErrAlreadyFinalized)
}

func TestExecute_ReservationNotFound(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(confirmedReservation(now.Add(30*time.Hour)), now)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 999, CallerWallet: "wallet-client"})

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(confirmedReservation(now.Add(30*time.Hour)), now)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 0, CallerWallet: "wallet-client"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{ReservationID: 7, CallerWallet: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_LedgerFailureAborts(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(confirmedReservation(now.Add(30*time.Hour)), now)
	f.ledger.err = assert.AnError

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 7, CallerWallet: "wallet-client"})

	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, f.reservations.setCancelled)
	assert.Empty(t, f.publisher.published)
}

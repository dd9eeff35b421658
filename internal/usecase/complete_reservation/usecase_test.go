package complete_reservation

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
	setErr       error
	setCompleted bool
	completedAt  time.Time
}

func (f *fakeReservationRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Reservation, error) {
	if f.reservation == nil || f.reservation.ID != id {
		return nil, reservationRepo.ErrReservationNotFound
	}
	res := *f.reservation
	return &res, nil
}

func (f *fakeReservationRepo) SetCompleted(_ context.Context, _ int64, at time.Time) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setCompleted = true
	f.completedAt = at
	return nil
}

type fakeSalonRepo struct {
	earnings map[int64]int64
}

func (f *fakeSalonRepo) AddEarnings(_ context.Context, id int64, amountUnits int64) error {
	if f.earnings == nil {
		f.earnings = map[int64]int64{}
	}
	f.earnings[id] += amountUnits
	return nil
}

type fakePlatformRepo struct {
	platform *domain.Platform
}

func (f *fakePlatformRepo) Get(_ context.Context) (*domain.Platform, error) {
	return f.platform, nil
}

type transfer struct {
	from   string
	to     string
	amount int64
}

type fakeLedger struct {
	transfers []transfer
}

func (f *fakeLedger) Transfer(_ context.Context, from, to string, amount int64) error {
	f.transfers = append(f.transfers, transfer{from: from, to: to, amount: amount})
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	published int
}

func (f *fakePublisher) Publish(context.Context, string, interface{}) error {
	f.published++
	return nil
}

type fakeMetrics struct{}

func (fakeMetrics) TransitionApplied(string) {}
func (fakeMetrics) Disbursed(string, int64)  {}

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
	salons       *fakeSalonRepo
	ledger       *fakeLedger
	publisher    *fakePublisher
}

func newFixture(res *domain.Reservation, now time.Time) *fixture {
	reservations := &fakeReservationRepo{reservation: res}
	salons := &fakeSalonRepo{}
	ledger := &fakeLedger{}
	publisher := &fakePublisher{}

	uc := NewUseCase(
		reservations,
		salons,
		&fakePlatformRepo{platform: &domain.Platform{
			AdminWallet:    "wallet-admin",
			TreasuryWallet: "wallet-treasury",
		}},
		ledger,
		&fakeTxManager{},
		publisher,
		fakeMetrics{},
		domain.DefaultPolicy(),
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	return &fixture{uc: uc, reservations: reservations, salons: salons, ledger: ledger, publisher: publisher}
}

func confirmedReservation(appointment time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:               7,
		ClientWallet:     "wallet-client",
		SalonID:          3,
		SalonOwnerWallet: "wallet-owner",
		ServiceID:        1,
		ServiceName:      "Маникюр",
		AmountUnits:      1_000_000_000,
		AppointmentTime:  appointment,
		Status:           domain.StatusConfirmed,
	}
}

func TestExecute_Settlement(t *testing.T) {
	appointment := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	now := appointment.Add(time.Hour)
	f := newFixture(confirmedReservation(appointment), now)

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 7, CallerWallet: "wallet-owner"})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, int64(970_000_000), resp.SalonPaymentUnits)
	assert.Equal(t, int64(30_000_000), resp.AppCommissionUnits)
	assert.Equal(t, now, resp.CompletedAt)

	require.Len(t, f.ledger.transfers, 2)
	assert.Equal(t, transfer{from: "escrow:7", to: "wallet-owner", amount: 970_000_000}, f.ledger.transfers[0])
	assert.Equal(t, transfer{from: "escrow:7", to: "wallet-treasury", amount: 30_000_000}, f.ledger.transfers[1])

	// Заработок салона растет ровно на выплату
	assert.Equal(t, int64(970_000_000), f.salons.earnings[3])
	assert.True(t, f.reservations.setCompleted)
	assert.Equal(t, 1, f.publisher.published)
}

func TestExecute_AppointmentNotYetDue(t *testing.T) {
	appointment := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(confirmedReservation(appointment), appointment.Add(-time.Minute))

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 7, CallerWallet: "wallet-owner"})

	assert.ErrorIs(t, err, ErrAppointmentNotYetDue)
	assert.Empty(t, f.ledger.transfers)
	assert.False(t, f.reservations.setCompleted)
}

func TestExecute_ExactlyAtAppointmentTime(t *testing.T) {
	appointment := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(confirmedReservation(appointment), appointment)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 7, CallerWallet: "wallet-owner"})

	require.NoError(t, err)
}

func TestExecute_NotOwner(t *testing.T) {
	appointment := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(confirmedReservation(appointment), appointment.Add(time.Hour))

	for _, caller := range []string{"wallet-client", "wallet-stranger"} {
		_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 7, CallerWallet: caller})

		assert.ErrorIs(t, err, ErrNotSalonOwner, "caller=%s", caller)
	}
	assert.Empty(t, f.ledger.transfers)
}

func TestExecute_AlreadyFinalized(t *testing.T) {
	appointment := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, status := range []domain.ReservationStatus{domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow} {
		res := confirmedReservation(appointment)
		res.Status = status
		f := newFixture(res, appointment.Add(time.Hour))

		_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 7, CallerWallet: "wallet-owner"})

		assert.ErrorIs(t, err, ErrAlreadyFinalized, "status=%s", status)
	}
}

func TestExecute_ReservationNotFound(t *testing.T) {
	appointment := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(confirmedReservation(appointment), appointment.Add(time.Hour))

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 404, CallerWallet: "wallet-owner"})

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	ledgerRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/ledger"
	platformRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/platform"
	reservationRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/reservation"
	salonRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/salon"
)

type fakeReservationRepo struct {
	createErr error
	created   *domain.Reservation
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *res
	created.ID = 7
	created.Status = domain.StatusConfirmed
	created.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.created = &created
	return &created, nil
}

type fakeSalonRepo struct {
	salon        *domain.Salon
	countedSalon int64
}

func (f *fakeSalonRepo) GetByID(_ context.Context, id int64) (*domain.Salon, error) {
	if f.salon == nil || f.salon.ID != id {
		return nil, salonRepo.ErrSalonNotFound
	}
	return f.salon, nil
}

func (f *fakeSalonRepo) IncrementReservationCount(_ context.Context, id int64) error {
	f.countedSalon = id
	return nil
}

type fakePlatformRepo struct {
	platform     *domain.Platform
	err          error
	reservations int64
	volume       int64
}

func (f *fakePlatformRepo) Get(_ context.Context) (*domain.Platform, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.platform, nil
}

func (f *fakePlatformRepo) IncrementCounters(_ context.Context, reservations, volume int64) error {
	f.reservations += reservations
	f.volume += volume
	return nil
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

type fakePublisher struct {
	published int
}

func (f *fakePublisher) Publish(context.Context, string, interface{}) error {
	f.published++
	return nil
}

type fakeMetrics struct {
	createdAmounts []int64
}

func (f *fakeMetrics) ReservationCreated(amountUnits int64) {
	f.createdAmounts = append(f.createdAmounts, amountUnits)
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
	salons       *fakeSalonRepo
	platform     *fakePlatformRepo
	ledger       *fakeLedger
	publisher    *fakePublisher
	metrics      *fakeMetrics
}

func newFixture(now time.Time) *fixture {
	reservations := &fakeReservationRepo{}
	salons := &fakeSalonRepo{salon: &domain.Salon{
		ID:          3,
		OwnerWallet: "wallet-owner",
		Name:        "Лотос",
		IsActive:    true,
		Services: []domain.Service{
			{ID: 1, Name: "Стрижка", PriceUnits: 1_000_000_000, DurationMinutes: 60, IsActive: true},
			{ID: 2, Name: "Окрашивание", PriceUnits: 2_500_000_000, DurationMinutes: 120, IsActive: false},
		},
	}}
	platform := &fakePlatformRepo{platform: &domain.Platform{
		AdminWallet:    "wallet-admin",
		TreasuryWallet: "wallet-treasury",
	}}
	ledger := &fakeLedger{}
	publisher := &fakePublisher{}
	metrics := &fakeMetrics{}

	uc := NewUseCase(
		reservations,
		salons,
		platform,
		ledger,
		&fakeTxManager{},
		publisher,
		metrics,
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	return &fixture{
		uc:           uc,
		reservations: reservations,
		salons:       salons,
		platform:     platform,
		ledger:       ledger,
		publisher:    publisher,
		metrics:      metrics,
	}
}

func validRequest(now time.Time) *Request {
	return &Request{
		ClientWallet:    "wallet-client",
		SalonID:         3,
		ServiceID:       1,
		AppointmentTime: now.Add(72 * time.Hour),
	}
}

func TestExecute_Success(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)

	resp, err := f.uc.Execute(context.Background(), validRequest(now))

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "wallet-owner", resp.SalonOwnerWallet)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, int64(1_000_000_000), resp.AmountUnits)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// Средства клиента блокируются на эскроу-счете бронирования
	require.Len(t, f.ledger.transfers, 1)
	assert.Equal(t, transfer{from: "wallet-client", to: "escrow:7", amount: 1_000_000_000}, f.ledger.transfers[0])

	// Счетчики платформы и салона увеличены
	assert.Equal(t, int64(1), f.platform.reservations)
	assert.Equal(t, int64(1_000_000_000), f.platform.volume)
	assert.Equal(t, int64(3), f.salons.countedSalon)

	assert.Equal(t, []int64{1_000_000_000}, f.metrics.createdAmounts)
	assert.Equal(t, 1, f.publisher.published)
}

func TestExecute_SnapshotsCatalogPrice(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)

	_, err := f.uc.Execute(context.Background(), validRequest(now))
	require.NoError(t, err)

	// Сумма и владелец зафиксированы в бронировании на момент создания
	assert.Equal(t, int64(1_000_000_000), f.reservations.created.AmountUnits)
	assert.Equal(t, "wallet-owner", f.reservations.created.SalonOwnerWallet)
	assert.Equal(t, "Стрижка", f.reservations.created.ServiceName)
}

func TestExecute_AppointmentMustBeInFuture(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)

	req := validRequest(now)
	req.AppointmentTime = now
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAppointmentInPast)

	req.AppointmentTime = now.Add(-time.Hour)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAppointmentInPast)

	assert.Empty(t, f.ledger.transfers)
}

func TestExecute_PlatformNotInitialized(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.platform.err = platformRepo.ErrPlatformNotFound

	_, err := f.uc.Execute(context.Background(), validRequest(now))

	assert.ErrorIs(t, err, ErrPlatformNotInitialized)
}

func TestExecute_SalonNotFound(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)

	req := validRequest(now)
	req.SalonID = 999
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestExecute_SalonInactive(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.salons.salon.IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest(now))

	assert.ErrorIs(t, err, ErrSalonInactive)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)

	// Несуществующая услуга
	req := validRequest(now)
	req.ServiceID = 99
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	// Неактивная услуга
	req.ServiceID = 2
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_DuplicateReservation(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.reservations.createErr = reservationRepo.ErrDuplicateReservation

	_, err := f.uc.Execute(context.Background(), validRequest(now))

	assert.ErrorIs(t, err, ErrDuplicateReservation)
	assert.Empty(t, f.ledger.transfers)
}

func TestExecute_InsufficientFunds(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.ledger.err = ledgerRepo.ErrInsufficientFunds

	_, err := f.uc.Execute(context.Background(), validRequest(now))

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Empty(t, f.metrics.createdAmounts)
	assert.Equal(t, 0, f.publisher.published)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty client wallet", func(r *Request) { r.ClientWallet = "" }},
		{"non-positive salon id", func(r *Request) { r.SalonID = 0 }},
		{"non-positive service id", func(r *Request) { r.ServiceID = -1 }},
		{"zero appointment time", func(r *Request) { r.AppointmentTime = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(now)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

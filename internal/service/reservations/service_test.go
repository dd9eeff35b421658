package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/reservation"
	salonRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-EscrowService/internal/service/reservations/models"
	"github.com/m04kA/SMC-EscrowService/pkg/ptr"
)

type fakeReservationRepo struct {
	byID       map[int64]*domain.Reservation
	listed     []*domain.Reservation
	lastStatus *domain.ReservationStatus
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeReservationRepo) ListByClient(_ context.Context, _ string, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.lastStatus = status
	return f.listed, nil
}

func (f *fakeReservationRepo) ListBySalon(_ context.Context, _ int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.lastStatus = status
	return f.listed, nil
}

type fakeSalonRepo struct {
	salon *domain.Salon
}

func (f *fakeSalonRepo) GetByID(_ context.Context, id int64) (*domain.Salon, error) {
	if f.salon == nil || f.salon.ID != id {
		return nil, salonRepo.ErrSalonNotFound
	}
	return f.salon, nil
}

type fakeTxManager struct {
	readOnlyCalls int
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.readOnlyCalls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{}) {}

func testReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:               7,
		ClientWallet:     "wallet-client",
		SalonID:          3,
		SalonOwnerWallet: "wallet-owner",
		ServiceID:        1,
		ServiceName:      "Стрижка",
		AmountUnits:      1_000_000_000,
		AppointmentTime:  time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Status:           domain.StatusConfirmed,
	}
}

func newService(res *domain.Reservation, salon *domain.Salon) (*Service, *fakeReservationRepo) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{}}
	if res != nil {
		repo.byID[res.ID] = res
	}
	return NewService(repo, &fakeSalonRepo{salon: salon}, &fakeTxManager{}, nopLogger{}), repo
}

func TestGetByID_Access(t *testing.T) {
	svc, _ := newService(testReservation(), nil)

	// Клиент и владелец салона видят бронирование
	for _, caller := range []string{"wallet-client", "wallet-owner"} {
		resp, err := svc.GetByID(context.Background(), 7, caller)
		require.NoError(t, err, "caller=%s", caller)
		assert.Equal(t, int64(7), resp.ID)
	}

	// Посторонний — нет
	_, err := svc.GetByID(context.Background(), 7, "wallet-stranger")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newService(nil, nil)

	_, err := svc.GetByID(context.Background(), 404, "wallet-client")

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetUserReservations_StatusFilter(t *testing.T) {
	svc, repo := newService(nil, nil)
	repo.listed = []*domain.Reservation{testReservation()}

	resp, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		ClientWallet: "wallet-client",
		Status:       ptr.Ptr("cancelled"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.NotNil(t, repo.lastStatus)
	assert.Equal(t, domain.StatusCancelled, *repo.lastStatus)
}

func TestGetUserReservations_InvalidStatus(t *testing.T) {
	svc, _ := newService(nil, nil)

	_, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		ClientWallet: "wallet-client",
		Status:       ptr.Ptr("pending"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSalonReservations_OwnerOnly(t *testing.T) {
	salon := &domain.Salon{ID: 3, OwnerWallet: "wallet-owner", Name: "Лотос", IsActive: true}
	repo := &fakeReservationRepo{
		byID:   map[int64]*domain.Reservation{},
		listed: []*domain.Reservation{testReservation()},
	}
	tx := &fakeTxManager{}
	svc := NewService(repo, &fakeSalonRepo{salon: salon}, tx, nopLogger{})

	resp, err := svc.GetSalonReservations(context.Background(), &models.GetSalonReservationsRequest{
		SalonID:      3,
		CallerWallet: "wallet-owner",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	// Проверка владельца и выборка выполняются по одному снимку
	assert.Equal(t, 1, tx.readOnlyCalls)

	_, err = svc.GetSalonReservations(context.Background(), &models.GetSalonReservationsRequest{
		SalonID:      3,
		CallerWallet: "wallet-client",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetSalonReservations_SalonNotFound(t *testing.T) {
	svc, _ := newService(nil, nil)

	_, err := svc.GetSalonReservations(context.Background(), &models.GetSalonReservationsRequest{
		SalonID:      404,
		CallerWallet: "wallet-owner",
	})

	assert.ErrorIs(t, err, ErrSalonNotFound)
}

package platform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	platformRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/platform"
	"github.com/m04kA/SMC-EscrowService/internal/service/platform/models"
)

type fakePlatformRepo struct {
	platform *domain.Platform
}

func (f *fakePlatformRepo) Create(_ context.Context, p *domain.Platform) (*domain.Platform, error) {
	if f.platform != nil {
		return nil, platformRepo.ErrAlreadyInitialized
	}
	f.platform = p
	return p, nil
}

func (f *fakePlatformRepo) Get(_ context.Context) (*domain.Platform, error) {
	if f.platform == nil {
		return nil, platformRepo.ErrPlatformNotFound
	}
	return f.platform, nil
}

type fakePublisher struct {
	published int
}

func (f *fakePublisher) Publish(context.Context, string, interface{}) error {
	f.published++
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{}) {}

func TestInitialize(t *testing.T) {
	publisher := &fakePublisher{}
	svc := NewService(&fakePlatformRepo{}, publisher, nopLogger{})

	resp, err := svc.Initialize(context.Background(), &models.InitializeRequest{
		AdminWallet:    "wallet-admin",
		TreasuryWallet: "wallet-treasury",
	})

	require.NoError(t, err)
	assert.Equal(t, "wallet-admin", resp.AdminWallet)
	assert.Equal(t, "wallet-treasury", resp.TreasuryWallet)
	assert.Equal(t, 1, publisher.published)
}

func TestInitialize_Singleton(t *testing.T) {
	svc := NewService(&fakePlatformRepo{platform: &domain.Platform{
		AdminWallet:    "wallet-admin",
		TreasuryWallet: "wallet-treasury",
	}}, &fakePublisher{}, nopLogger{})

	_, err := svc.Initialize(context.Background(), &models.InitializeRequest{
		AdminWallet:    "wallet-other",
		TreasuryWallet: "wallet-other-treasury",
	})

	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestInitialize_InvalidInput(t *testing.T) {
	svc := NewService(&fakePlatformRepo{}, &fakePublisher{}, nopLogger{})

	_, err := svc.Initialize(context.Background(), &models.InitializeRequest{TreasuryWallet: "wallet-treasury"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Initialize(context.Background(), &models.InitializeRequest{AdminWallet: "wallet-admin"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGet_AdminOnly(t *testing.T) {
	svc := NewService(&fakePlatformRepo{platform: &domain.Platform{
		AdminWallet:       "wallet-admin",
		TreasuryWallet:    "wallet-treasury",
		TotalReservations: 5,
		TotalVolume:       5_000_000_000,
	}}, &fakePublisher{}, nopLogger{})

	resp, err := svc.Get(context.Background(), "wallet-admin")
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.TotalReservations)
	assert.Equal(t, int64(5_000_000_000), resp.TotalVolume)

	_, err = svc.Get(context.Background(), "wallet-stranger")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGet_NotInitialized(t *testing.T) {
	svc := NewService(&fakePlatformRepo{}, &fakePublisher{}, nopLogger{})

	_, err := svc.Get(context.Background(), "wallet-admin")

	assert.ErrorIs(t, err, ErrPlatformNotFound)
}

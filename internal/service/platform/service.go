package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	"github.com/m04kA/SMC-EscrowService/internal/infra/events"
	platformRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/platform"
	"github.com/m04kA/SMC-EscrowService/internal/service/platform/models"
)

// Service сервис для работы с платформой
type Service struct {
	platformRepo PlatformRepository
	publisher    EventPublisher
	logger       Logger
}

// NewService создает новый экземпляр сервиса платформы
func NewService(
	platformRepo PlatformRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		platformRepo: platformRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// Initialize создает единственную запись платформы.
// Администратором становится вызывающий кошелек; повторная инициализация
// невозможна.
func (s *Service) Initialize(ctx context.Context, req *models.InitializeRequest) (*models.PlatformResponse, error) {
	s.logger.Info("Initialize: admin=%s, treasury=%s", req.AdminWallet, req.TreasuryWallet)

	if req.AdminWallet == "" {
		return nil, fmt.Errorf("%w: adminWallet is required", ErrInvalidInput)
	}
	if req.TreasuryWallet == "" {
		return nil, fmt.Errorf("%w: treasuryWallet is required", ErrInvalidInput)
	}

	created, err := s.platformRepo.Create(ctx, &domain.Platform{
		AdminWallet:    req.AdminWallet,
		TreasuryWallet: req.TreasuryWallet,
	})
	if err != nil {
		if errors.Is(err, platformRepo.ErrAlreadyInitialized) {
			s.logger.Warn("Initialize: platform already initialized")
			return nil, ErrAlreadyInitialized
		}
		s.logger.Error("Initialize: repository error: %v", err)
		return nil, fmt.Errorf("%w: Initialize - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Initialize: platform initialized by admin=%s", created.AdminWallet)

	if err := s.publisher.Publish(ctx, events.KeyPlatformInitialized, events.PlatformInitialized{
		AdminWallet:    created.AdminWallet,
		TreasuryWallet: created.TreasuryWallet,
	}); err != nil {
		s.logger.Warn("Initialize: failed to publish event: %v", err)
	}

	return models.FromDomainPlatform(created), nil
}

// Get возвращает состояние платформы со счетчиками.
// Доступно только администратору.
func (s *Service) Get(ctx context.Context, callerWallet string) (*models.PlatformResponse, error) {
	s.logger.Info("Get: fetching platform state for caller=%s", callerWallet)

	p, err := s.platformRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, platformRepo.ErrPlatformNotFound) {
			s.logger.Warn("Get: platform not initialized")
			return nil, ErrPlatformNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	if p.AdminWallet != callerWallet {
		s.logger.Warn("Get: access denied for caller=%s", callerWallet)
		return nil, ErrAccessDenied
	}

	return models.FromDomainPlatform(p), nil
}

package salons

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	"github.com/m04kA/SMC-EscrowService/internal/infra/events"
	salonRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-EscrowService/internal/service/salons/models"
	"github.com/m04kA/SMC-EscrowService/pkg/txmanager"
)

// Service сервис для работы с салонами
type Service struct {
	salonRepo SalonRepository
	txManager TransactionManager
	publisher EventPublisher
	logger    Logger
}

// NewService создает новый экземпляр сервиса салонов
func NewService(
	salonRepo SalonRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		salonRepo: salonRepo,
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
	}
}

// Register регистрирует салон с каталогом услуг.
// Владельцем становится вызывающий кошелек; один кошелек может владеть
// только одним салоном. Каталог фиксируется при регистрации, пути
// обновления нет.
func (s *Service) Register(ctx context.Context, req *models.RegisterSalonRequest) (*models.SalonResponse, error) {
	s.logger.Info("Register: owner=%s, name=%s, services=%d", req.OwnerWallet, req.Name, len(req.Services))

	if err := validateRegisterRequest(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	// Салон и каталог пишутся двумя запросами, поэтому только в одной
	// транзакции: оборванная регистрация не должна оставить салон без услуг
	// и занятый owner_wallet.
	var created *domain.Salon
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.salonRepo.Create(ctx, req.ToDomainSalon())
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, salonRepo.ErrSalonAlreadyExists):
			s.logger.Warn("Register: owner=%s already has a salon", req.OwnerWallet)
			return nil, ErrSalonAlreadyExists
		case errors.Is(err, txmanager.ErrSerializationFailure):
			s.logger.Warn("Register: serialization failure for owner=%s", req.OwnerWallet)
			return nil, err
		default:
			s.logger.Error("Register: repository error: %v", err)
			return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Register: successfully registered salon id=%d", created.ID)

	if err := s.publisher.Publish(ctx, events.KeySalonRegistered, events.SalonRegistered{
		SalonID:     created.ID,
		OwnerWallet: created.OwnerWallet,
		Name:        created.Name,
		Services:    len(created.Services),
	}); err != nil {
		s.logger.Warn("Register: failed to publish event for salon id=%d: %v", created.ID, err)
	}

	return models.FromDomainSalon(created), nil
}

// GetByID получает салон по ID с каталогом услуг
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SalonResponse, error) {
	s.logger.Info("GetByID: fetching salon id=%d", id)

	// Салон и его каталог читаются раздельно — read-only транзакция дает
	// согласованный снимок
	var salon *domain.Salon
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		salon, err = s.salonRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("GetByID: salon id=%d not found", id)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetByID: repository error for salon id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSalon(salon), nil
}

// List возвращает все активные салоны
func (s *Service) List(ctx context.Context) (*models.SalonListResponse, error) {
	s.logger.Info("List: fetching active salons")

	var salons []*domain.Salon
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		salons, err = s.salonRepo.ListActive(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d salons", len(salons))
	return models.FromDomainSalonList(salons), nil
}

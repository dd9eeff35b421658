package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	"github.com/m04kA/SMC-EscrowService/internal/infra/events"
	ledgerRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/ledger"
	platformRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/platform"
	reservationRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/reservation"
	salonRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/salon"
)

// UseCase use case для создания бронирования с блокировкой средств в эскроу
type UseCase struct {
	reservations ReservationRepository
	salons       SalonRepository
	platform     PlatformRepository
	ledger       LedgerRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservations ReservationRepository,
	salons SalonRepository,
	platform PlatformRepository,
	ledger LedgerRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservations: reservations,
		salons:       salons,
		platform:     platform,
		ledger:       ledger,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Запись бронирования и списание средств клиента в эскроу выполняются
// в одной сериализуемой транзакции: бронирование без покрытия в эскроу
// существовать не может.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: client=%s, salon=%d, service=%d, appointment=%s",
		req.ClientWallet, req.SalonID, req.ServiceID, req.AppointmentTime.Format(domain.TimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Визит должен быть строго в будущем
	now := uc.timeProvider.Now()
	if err := validateAppointmentTime(req.AppointmentTime, now); err != nil {
		uc.logger.Warn("CreateReservation: appointment %s is not in the future",
			req.AppointmentTime.Format(domain.TimeFormat))
		return nil, err
	}

	var result *domain.Reservation

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Платформа должна быть инициализирована
		if _, err := uc.platform.Get(txCtx); err != nil {
			if errors.Is(err, platformRepo.ErrPlatformNotFound) {
				uc.logger.Warn("CreateReservation: platform not initialized")
				return ErrPlatformNotInitialized
			}
			uc.logger.Error("CreateReservation: failed to get platform: %v", err)
			return fmt.Errorf("%w: failed to get platform: %v", ErrInternal, err)
		}

		// 3.2. Получаем салон и проверяем его активность
		salon, err := uc.salons.GetByID(txCtx, req.SalonID)
		if err != nil {
			if errors.Is(err, salonRepo.ErrSalonNotFound) {
				uc.logger.Warn("CreateReservation: salon id=%d not found", req.SalonID)
				return ErrSalonNotFound
			}
			uc.logger.Error("CreateReservation: failed to get salon id=%d: %v", req.SalonID, err)
			return fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
		}
		if !salon.IsActive {
			uc.logger.Warn("CreateReservation: salon id=%d is not active", req.SalonID)
			return ErrSalonInactive
		}

		// 3.3. Услуга должна существовать в каталоге и быть активной
		service := salon.FindActiveService(req.ServiceID)
		if service == nil {
			uc.logger.Warn("CreateReservation: service id=%d not found in salon id=%d",
				req.ServiceID, req.SalonID)
			return ErrServiceNotFound
		}

		// 3.4. Создаем бронирование со снапшотом услуги и владельца.
		// Сумма фиксируется из каталога на момент создания и дальше
		// не пересчитывается.
		created, err := uc.reservations.Create(txCtx, &domain.Reservation{
			ClientWallet:     req.ClientWallet,
			SalonID:          salon.ID,
			SalonOwnerWallet: salon.OwnerWallet,
			ServiceID:        service.ID,
			ServiceName:      service.Name,
			AmountUnits:      service.PriceUnits,
			AppointmentTime:  req.AppointmentTime,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrDuplicateReservation) {
				uc.logger.Warn("CreateReservation: duplicate for client=%s salon=%d time=%s",
					req.ClientWallet, req.SalonID, req.AppointmentTime.Format(domain.TimeFormat))
				return ErrDuplicateReservation
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 3.5. Блокируем средства клиента на эскроу-счете бронирования
		if err := uc.ledger.Transfer(txCtx, req.ClientWallet, created.EscrowAddress(), created.AmountUnits); err != nil {
			if errors.Is(err, ledgerRepo.ErrInsufficientFunds) {
				uc.logger.Warn("CreateReservation: insufficient funds, client=%s amount=%d",
					req.ClientWallet, created.AmountUnits)
				return ErrInsufficientFunds
			}
			uc.logger.Error("CreateReservation: failed to fund escrow: %v", err)
			return fmt.Errorf("%w: failed to fund escrow: %v", ErrInternal, err)
		}

		// 3.6. Обновляем счетчики платформы и салона атомарными инкрементами
		if err := uc.platform.IncrementCounters(txCtx, 1, created.AmountUnits); err != nil {
			uc.logger.Error("CreateReservation: failed to increment platform counters: %v", err)
			return fmt.Errorf("%w: failed to increment platform counters: %v", ErrInternal, err)
		}
		if err := uc.salons.IncrementReservationCount(txCtx, salon.ID); err != nil {
			uc.logger.Error("CreateReservation: failed to increment salon counter: %v", err)
			return fmt.Errorf("%w: failed to increment salon counter: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, escrow=%d units",
		result.ID, result.AmountUnits)

	uc.metrics.ReservationCreated(result.AmountUnits)

	// Событие публикуется после коммита, best-effort
	if err := uc.publisher.Publish(ctx, events.KeyReservationCreated, events.ReservationCreated{
		ReservationID:   result.ID,
		ClientWallet:    result.ClientWallet,
		SalonID:         result.SalonID,
		ServiceID:       result.ServiceID,
		ServiceName:     result.ServiceName,
		AmountUnits:     result.AmountUnits,
		AppointmentTime: result.AppointmentTime.Format(domain.TimeFormat),
	}); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish event for id=%d: %v", result.ID, err)
	}

	return &Response{
		ID:               result.ID,
		ClientWallet:     result.ClientWallet,
		SalonID:          result.SalonID,
		SalonOwnerWallet: result.SalonOwnerWallet,
		ServiceID:        result.ServiceID,
		ServiceName:      result.ServiceName,
		AmountUnits:      result.AmountUnits,
		AppointmentTime:  result.AppointmentTime,
		Status:           string(result.Status),
		CreatedAt:        result.CreatedAt,
	}, nil
}

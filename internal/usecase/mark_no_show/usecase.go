package mark_no_show

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	"github.com/m04kA/SMC-EscrowService/internal/infra/events"
	platformRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/platform"
	reservationRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/reservation"
)

// UseCase use case для отметки неявки клиента владельцем салона
type UseCase struct {
	reservations ReservationRepository
	salons       SalonRepository
	platform     PlatformRepository
	ledger       LedgerRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	policy       domain.Policy
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
	policy domain.Policy,
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
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отметки неявки. Деньги распределяются так же,
// как при завершении визита, но только после истечения льготного периода:
// клиент должен иметь шанс опоздать, не потеряв всю сумму.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MarkNoShow: id=%d, caller=%s", req.ReservationID, req.CallerWallet)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MarkNoShow: validation failed: %v", err)
		return nil, err
	}

	var (
		result *domain.Reservation
		split  domain.Split
	)

	// 2. Выполняем отметку в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем строку бронирования до конца транзакции
		res, err := uc.reservations.GetByIDForUpdate(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("MarkNoShow: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("MarkNoShow: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2.2. Отмечать неявку может только владелец салона
		if res.SalonOwnerWallet != req.CallerWallet {
			uc.logger.Warn("MarkNoShow: caller=%s is not the owner for reservation id=%d",
				req.CallerWallet, res.ID)
			return ErrNotSalonOwner
		}

		// 2.3. Переход возможен только из confirmed
		if !res.CanTransition() {
			uc.logger.Warn("MarkNoShow: reservation id=%d already in status=%s", res.ID, res.Status)
			return ErrAlreadyFinalized
		}

		// 2.4. Льготный период после времени визита должен истечь
		now := uc.timeProvider.Now()
		if eligibleAt := res.NoShowEligibleAt(uc.policy.NoShowGrace); now.Before(eligibleAt) {
			uc.logger.Warn("MarkNoShow: reservation id=%d eligible only at %s",
				res.ID, eligibleAt.Format(domain.TimeFormat))
			return ErrTooEarlyForNoShow
		}

		// 2.5. Кошелек казначейства для комиссии
		platform, err := uc.platform.Get(txCtx)
		if err != nil {
			if errors.Is(err, platformRepo.ErrPlatformNotFound) {
				return ErrPlatformNotInitialized
			}
			uc.logger.Error("MarkNoShow: failed to get platform: %v", err)
			return fmt.Errorf("%w: failed to get platform: %v", ErrInternal, err)
		}

		// 2.6. Комиссия от полной суммы, остаток салону, клиенту ничего
		split = domain.SettlementSplit(res.AmountUnits, uc.policy)

		uc.logger.Info("MarkNoShow: id=%d, salon=%d units, commission=%d units",
			res.ID, split.SalonFee, split.AppCommission)

		// 2.7. Выплачиваем ненулевые ноги с эскроу-счета
		escrow := res.EscrowAddress()
		if split.SalonFee > 0 {
			if err := uc.ledger.Transfer(txCtx, escrow, res.SalonOwnerWallet, split.SalonFee); err != nil {
				uc.logger.Error("MarkNoShow: failed to pay salon: %v", err)
				return fmt.Errorf("%w: failed to disburse escrow: %v", ErrInternal, err)
			}
		}
		if split.AppCommission > 0 {
			if err := uc.ledger.Transfer(txCtx, escrow, platform.TreasuryWallet, split.AppCommission); err != nil {
				uc.logger.Error("MarkNoShow: failed to pay commission: %v", err)
				return fmt.Errorf("%w: failed to disburse escrow: %v", ErrInternal, err)
			}
		}

		// 2.8. Обновляем заработок салона атомарным инкрементом
		if split.SalonFee > 0 {
			if err := uc.salons.AddEarnings(txCtx, res.SalonID, split.SalonFee); err != nil {
				uc.logger.Error("MarkNoShow: failed to add salon earnings: %v", err)
				return fmt.Errorf("%w: failed to add salon earnings: %v", ErrInternal, err)
			}
		}

		// 2.9. Фиксируем терминальный статус
		if err := uc.reservations.SetNoShow(txCtx, res.ID); err != nil {
			if errors.Is(err, reservationRepo.ErrInvalidStatus) {
				return ErrAlreadyFinalized
			}
			uc.logger.Error("MarkNoShow: failed to set status: %v", err)
			return fmt.Errorf("%w: failed to set status: %v", ErrInternal, err)
		}

		result = res
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("MarkNoShow: successfully marked reservation id=%d as no-show", result.ID)

	uc.metrics.TransitionApplied(string(domain.StatusNoShow))
	uc.metrics.Disbursed("salon_fee", split.SalonFee)
	uc.metrics.Disbursed("app_commission", split.AppCommission)

	// Событие публикуется после коммита, best-effort
	if err := uc.publisher.Publish(ctx, events.KeyReservationNoShow, events.ReservationNoShow{
		ReservationID:      result.ID,
		ClientWallet:       result.ClientWallet,
		SalonOwnerWallet:   result.SalonOwnerWallet,
		SalonPaymentUnits:  split.SalonFee,
		AppCommissionUnits: split.AppCommission,
	}); err != nil {
		uc.logger.Warn("MarkNoShow: failed to publish event for id=%d: %v", result.ID, err)
	}

	return &Response{
		ReservationID:      result.ID,
		Status:             string(domain.StatusNoShow),
		SalonPaymentUnits:  split.SalonFee,
		AppCommissionUnits: split.AppCommission,
	}, nil
}

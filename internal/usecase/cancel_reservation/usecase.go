package cancel_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	"github.com/m04kA/SMC-EscrowService/internal/infra/events"
	platformRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/platform"
	reservationRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/reservation"
)

// UseCase use case для отмены бронирования клиентом с расчетом возврата
type UseCase struct {
	reservations ReservationRepository
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

// Execute выполняет use case отмены бронирования.
// Разбивка выплат вычисляется из времени до визита на момент отмены,
// а все ноги выплаты и смена статуса фиксируются одной сериализуемой
// транзакцией: эскроу расходуется полностью либо не расходуется вовсе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: id=%d, caller=%s", req.ReservationID, req.CallerWallet)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelReservation: validation failed: %v", err)
		return nil, err
	}

	var (
		result      *domain.Reservation
		split       domain.Split
		cancelledAt time.Time
	)

	// 2. Выполняем отмену в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем строку бронирования до конца транзакции
		res, err := uc.reservations.GetByIDForUpdate(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("CancelReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("CancelReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2.2. Отменять может только клиент бронирования
		if res.ClientWallet != req.CallerWallet {
			uc.logger.Warn("CancelReservation: caller=%s is not the client of reservation id=%d",
				req.CallerWallet, res.ID)
			return ErrNotReservationClient
		}

		// 2.3. Переход возможен только из confirmed
		if !res.CanTransition() {
			uc.logger.Warn("CancelReservation: reservation id=%d already in status=%s", res.ID, res.Status)
			return ErrAlreadyFinalized
		}

		// 2.4. Кошелек казначейства для комиссии
		platform, err := uc.platform.Get(txCtx)
		if err != nil {
			if errors.Is(err, platformRepo.ErrPlatformNotFound) {
				return ErrPlatformNotInitialized
			}
			uc.logger.Error("CancelReservation: failed to get platform: %v", err)
			return fmt.Errorf("%w: failed to get platform: %v", ErrInternal, err)
		}

		// 2.5. Разбивка по тарифной сетке отмены
		now := uc.timeProvider.Now()
		until := res.TimeUntilAppointment(now)
		split = domain.CancellationSplit(res.AmountUnits, until, uc.policy)

		uc.logger.Info("CancelReservation: id=%d, until=%s, refund=%d, fee=%d, commission=%d",
			res.ID, until, split.ClientRefund, split.SalonFee, split.AppCommission)

		// 2.6. Выплачиваем ненулевые ноги с эскроу-счета
		escrow := res.EscrowAddress()
		legs := []struct {
			to     string
			amount int64
		}{
			{res.ClientWallet, split.ClientRefund},
			{res.SalonOwnerWallet, split.SalonFee},
			{platform.TreasuryWallet, split.AppCommission},
		}
		for _, leg := range legs {
			if leg.amount == 0 {
				continue
			}
			if err := uc.ledger.Transfer(txCtx, escrow, leg.to, leg.amount); err != nil {
				uc.logger.Error("CancelReservation: failed to disburse %d units to %s: %v",
					leg.amount, leg.to, err)
				return fmt.Errorf("%w: failed to disburse escrow: %v", ErrInternal, err)
			}
		}

		// 2.7. Фиксируем терминальный статус
		cancelledAt = now
		if err := uc.reservations.SetCancelled(txCtx, res.ID, cancelledAt); err != nil {
			if errors.Is(err, reservationRepo.ErrInvalidStatus) {
				return ErrAlreadyFinalized
			}
			uc.logger.Error("CancelReservation: failed to set status: %v", err)
			return fmt.Errorf("%w: failed to set status: %v", ErrInternal, err)
		}

		result = res
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelReservation: successfully cancelled reservation id=%d", result.ID)

	uc.metrics.TransitionApplied(string(domain.StatusCancelled))
	uc.metrics.Disbursed("client_refund", split.ClientRefund)
	uc.metrics.Disbursed("salon_fee", split.SalonFee)
	uc.metrics.Disbursed("app_commission", split.AppCommission)

	// Событие публикуется после коммита, best-effort
	if err := uc.publisher.Publish(ctx, events.KeyReservationCancelled, events.ReservationCancelled{
		ReservationID:        result.ID,
		ClientWallet:         result.ClientWallet,
		SalonOwnerWallet:     result.SalonOwnerWallet,
		AmountUnits:          result.AmountUnits,
		RefundUnits:          split.ClientRefund,
		SalonFeeUnits:        split.SalonFee,
		AppCommissionUnits:   split.AppCommission,
		TimeUntilAppointment: int64(result.TimeUntilAppointment(cancelledAt).Seconds()),
	}); err != nil {
		uc.logger.Warn("CancelReservation: failed to publish event for id=%d: %v", result.ID, err)
	}

	return &Response{
		ReservationID:      result.ID,
		Status:             string(domain.StatusCancelled),
		CancelledAt:        cancelledAt,
		RefundUnits:        split.ClientRefund,
		SalonFeeUnits:      split.SalonFee,
		AppCommissionUnits: split.AppCommission,
	}, nil
}

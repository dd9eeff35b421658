package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/reservation"
	salonRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-EscrowService/internal/service/reservations/models"
)

// Service сервис для чтения бронирований
type Service struct {
	reservationRepo ReservationRepository
	salonRepo       SalonRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	salonRepo SalonRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		salonRepo:       salonRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно клиенту бронирования и владельцу салона.
func (s *Service) GetByID(ctx context.Context, id int64, callerWallet string) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for caller=%s", id, callerWallet)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if res.ClientWallet != callerWallet && res.SalonOwnerWallet != callerWallet {
		s.logger.Warn("GetByID: access denied for caller=%s to reservation id=%d", callerWallet, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res), nil
}

// GetUserReservations получает историю бронирований клиента.
// Опционально фильтрует по статусу.
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for client=%s, status=%v", req.ClientWallet, req.Status)

	status, err := s.parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetUserReservations: invalid status=%s", *req.Status)
		return nil, err
	}

	reservations, err := s.reservationRepo.ListByClient(ctx, req.ClientWallet, status)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for client=%s: %v", req.ClientWallet, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for client=%s",
		len(reservations), req.ClientWallet)
	return models.FromDomainReservationList(reservations), nil
}

// GetSalonReservations получает бронирования салона.
// Доступно только владельцу салона.
func (s *Service) GetSalonReservations(ctx context.Context, req *models.GetSalonReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetSalonReservations: fetching reservations for salon=%d, caller=%s", req.SalonID, req.CallerWallet)

	status, err := s.parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetSalonReservations: invalid status=%s", *req.Status)
		return nil, err
	}

	// Проверка владельца и выборка бронирований идут по одному снимку
	var reservations []*domain.Reservation
	err = s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		salon, err := s.salonRepo.GetByID(ctx, req.SalonID)
		if err != nil {
			return err
		}
		if salon.OwnerWallet != req.CallerWallet {
			return ErrAccessDenied
		}
		reservations, err = s.reservationRepo.ListBySalon(ctx, req.SalonID, status)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, salonRepo.ErrSalonNotFound):
			s.logger.Warn("GetSalonReservations: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("GetSalonReservations: access denied for caller=%s to salon id=%d",
				req.CallerWallet, req.SalonID)
			return nil, ErrAccessDenied
		default:
			s.logger.Error("GetSalonReservations: repository error for salon id=%d: %v", req.SalonID, err)
			return nil, fmt.Errorf("%w: GetSalonReservations - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("GetSalonReservations: successfully fetched %d reservations for salon=%d",
		len(reservations), req.SalonID)
	return models.FromDomainReservationList(reservations), nil
}

func (s *Service) parseStatus(raw *string) (*domain.ReservationStatus, error) {
	if raw == nil {
		return nil, nil
	}
	status, err := domain.ParseReservationStatus(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	return &status, nil
}

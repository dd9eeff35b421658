package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EscrowService/internal/api/handlers"
	"github.com/m04kA/SMC-EscrowService/internal/api/middleware"
	usecase "github.com/m04kA/SMC-EscrowService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-EscrowService/pkg/txmanager"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgUnauthorized           = "требуется авторизация"
	msgPlatformNotInitialized = "платформа не инициализирована"
	msgSalonNotFound          = "салон не найден"
	msgServiceNotFound        = "услуга не найдена"
	msgSalonInactive          = "салон не принимает бронирования"
	msgAppointmentInPast      = "время визита должно быть в будущем"
	msgDuplicate              = "бронирование на это время уже существует"
	msgInsufficientFunds      = "недостаточно средств"
	msgConflict               = "конфликт с параллельной операцией, повторите запрос"
)

type Handler struct {
	usecase CreateReservationUseCase
	logger  Logger
}

func NewHandler(uc CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: uc,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	wallet, ok := middleware.WalletFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.usecase.Execute(r.Context(), req.ToUseCaseRequest(wallet))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, usecase.ErrAppointmentInPast):
			h.logger.Warn("POST /reservations - Appointment in past: client=%s", wallet)
			handlers.RespondBadRequest(w, msgAppointmentInPast)

		case errors.Is(err, usecase.ErrPlatformNotInitialized):
			handlers.RespondConflict(w, msgPlatformNotInitialized)

		case errors.Is(err, usecase.ErrSalonNotFound):
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, usecase.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, usecase.ErrSalonInactive):
			handlers.RespondConflict(w, msgSalonInactive)

		case errors.Is(err, usecase.ErrDuplicateReservation):
			handlers.RespondConflict(w, msgDuplicate)

		case errors.Is(err, usecase.ErrInsufficientFunds):
			h.logger.Warn("POST /reservations - Insufficient funds: client=%s", wallet)
			handlers.RespondPaymentRequired(w, msgInsufficientFunds)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("POST /reservations - Serialization failure: client=%s", wallet)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, client=%s", resp.ID, wallet)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}

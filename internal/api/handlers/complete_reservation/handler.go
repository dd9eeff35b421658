package complete_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-EscrowService/internal/api/handlers"
	"github.com/m04kA/SMC-EscrowService/internal/api/middleware"
	usecase "github.com/m04kA/SMC-EscrowService/internal/usecase/complete_reservation"
	"github.com/m04kA/SMC-EscrowService/pkg/txmanager"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgUnauthorized         = "требуется авторизация"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "завершить визит может только владелец салона"
	msgAlreadyFinalized     = "бронирование уже завершено"
	msgNotYetDue            = "время визита еще не наступило"
	msgPlatformNotReady     = "платформа не инициализирована"
	msgConflict             = "конфликт с параллельной операцией, повторите запрос"
)

type Handler struct {
	usecase CompleteReservationUseCase
	logger  Logger
}

func NewHandler(uc CompleteReservationUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: uc,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	wallet, ok := middleware.WalletFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/complete - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	resp, err := h.usecase.Execute(r.Context(), &usecase.Request{
		ReservationID: reservationID,
		CallerWallet:  wallet,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, usecase.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/complete - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, usecase.ErrNotSalonOwner):
			h.logger.Warn("PATCH /reservations/{id}/complete - Access denied: reservation_id=%d, caller=%s",
				reservationID, wallet)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, usecase.ErrAlreadyFinalized):
			h.logger.Warn("PATCH /reservations/{id}/complete - Already finalized: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgAlreadyFinalized)

		case errors.Is(err, usecase.ErrAppointmentNotYetDue):
			h.logger.Warn("PATCH /reservations/{id}/complete - Not yet due: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgNotYetDue)

		case errors.Is(err, usecase.ErrPlatformNotInitialized):
			handlers.RespondConflict(w, msgPlatformNotReady)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("PATCH /reservations/{id}/complete - Serialization failure: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /reservations/{id}/complete - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/complete - Completed: reservation_id=%d, salon_payment=%d units",
		reservationID, resp.SalonPaymentUnits)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}

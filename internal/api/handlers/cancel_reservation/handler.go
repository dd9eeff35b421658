package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-EscrowService/internal/api/handlers"
	"github.com/m04kA/SMC-EscrowService/internal/api/middleware"
	usecase "github.com/m04kA/SMC-EscrowService/internal/usecase/cancel_reservation"
	"github.com/m04kA/SMC-EscrowService/pkg/txmanager"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgUnauthorized         = "требуется авторизация"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "отменить бронирование может только клиент"
	msgAlreadyFinalized     = "бронирование уже завершено"
	msgPlatformNotReady     = "платформа не инициализирована"
	msgConflict             = "конфликт с параллельной операцией, повторите запрос"
)

type Handler struct {
	usecase CancelReservationUseCase
	logger  Logger
}

func NewHandler(uc CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: uc,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	wallet, ok := middleware.WalletFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
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
			h.logger.Warn("PATCH /reservations/{id}/cancel - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, usecase.ErrNotReservationClient):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Access denied: reservation_id=%d, caller=%s",
				reservationID, wallet)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, usecase.ErrAlreadyFinalized):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Already finalized: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgAlreadyFinalized)

		case errors.Is(err, usecase.ErrPlatformNotInitialized):
			handlers.RespondConflict(w, msgPlatformNotReady)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Serialization failure: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Cancelled: reservation_id=%d, refund=%d units",
		reservationID, resp.RefundUnits)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}

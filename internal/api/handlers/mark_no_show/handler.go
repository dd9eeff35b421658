package mark_no_show

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-EscrowService/internal/api/handlers"
	"github.com/m04kA/SMC-EscrowService/internal/api/middleware"
	usecase "github.com/m04kA/SMC-EscrowService/internal/usecase/mark_no_show"
	"github.com/m04kA/SMC-EscrowService/pkg/txmanager"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgUnauthorized         = "требуется авторизация"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "отметить неявку может только владелец салона"
	msgAlreadyFinalized     = "бронирование уже завершено"
	msgTooEarly             = "льготный период после визита еще не истек"
	msgPlatformNotReady     = "платформа не инициализирована"
	msgConflict             = "конфликт с параллельной операцией, повторите запрос"
)

type Handler struct {
	usecase MarkNoShowUseCase
	logger  Logger
}

func NewHandler(uc MarkNoShowUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: uc,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	wallet, ok := middleware.WalletFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/no-show - Invalid reservation ID: %v", err)
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
			h.logger.Warn("PATCH /reservations/{id}/no-show - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, usecase.ErrNotSalonOwner):
			h.logger.Warn("PATCH /reservations/{id}/no-show - Access denied: reservation_id=%d, caller=%s",
				reservationID, wallet)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, usecase.ErrAlreadyFinalized):
			h.logger.Warn("PATCH /reservations/{id}/no-show - Already finalized: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgAlreadyFinalized)

		case errors.Is(err, usecase.ErrTooEarlyForNoShow):
			h.logger.Warn("PATCH /reservations/{id}/no-show - Too early: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgTooEarly)

		case errors.Is(err, usecase.ErrPlatformNotInitialized):
			handlers.RespondConflict(w, msgPlatformNotReady)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("PATCH /reservations/{id}/no-show - Serialization failure: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /reservations/{id}/no-show - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/no-show - Marked: reservation_id=%d, salon_payment=%d units",
		reservationID, resp.SalonPaymentUnits)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}

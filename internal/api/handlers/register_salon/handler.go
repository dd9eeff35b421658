package register_salon

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EscrowService/internal/api/handlers"
	"github.com/m04kA/SMC-EscrowService/internal/api/middleware"
	"github.com/m04kA/SMC-EscrowService/internal/service/salons"
	"github.com/m04kA/SMC-EscrowService/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgAlreadyExists      = "у владельца уже зарегистрирован салон"
	msgConflict           = "конфликт с параллельной операцией, повторите запрос"
)

type Handler struct {
	service SalonService
	logger  Logger
}

func NewHandler(service SalonService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	wallet, ok := middleware.WalletFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req RegisterSalonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Register(r.Context(), req.ToServiceRequest(wallet))
	if err != nil {
		switch {
		case errors.Is(err, salons.ErrInvalidInput):
			h.logger.Warn("POST /salons - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, salons.ErrSalonAlreadyExists):
			h.logger.Warn("POST /salons - Salon already exists: owner=%s", wallet)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("POST /salons - Serialization failure: owner=%s", wallet)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /salons - Failed to register salon: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons - Salon registered: id=%d, owner=%s", resp.ID, wallet)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

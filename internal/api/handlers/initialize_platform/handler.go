package initialize_platform

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EscrowService/internal/api/handlers"
	"github.com/m04kA/SMC-EscrowService/internal/api/middleware"
	"github.com/m04kA/SMC-EscrowService/internal/service/platform"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgAlreadyInitialized = "платформа уже инициализирована"
)

type Handler struct {
	service PlatformService
	logger  Logger
}

func NewHandler(service PlatformService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/platform
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	wallet, ok := middleware.WalletFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req InitializePlatformRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /platform - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Initialize(r.Context(), req.ToServiceRequest(wallet))
	if err != nil {
		switch {
		case errors.Is(err, platform.ErrInvalidInput):
			h.logger.Warn("POST /platform - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, platform.ErrAlreadyInitialized):
			h.logger.Warn("POST /platform - Already initialized: admin=%s", wallet)
			handlers.RespondConflict(w, msgAlreadyInitialized)

		default:
			h.logger.Error("POST /platform - Failed to initialize: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /platform - Platform initialized: admin=%s", wallet)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

package get_platform

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EscrowService/internal/api/handlers"
	"github.com/m04kA/SMC-EscrowService/internal/api/middleware"
	"github.com/m04kA/SMC-EscrowService/internal/service/platform"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgNotFound     = "платформа не инициализирована"
	msgForbidden    = "доступ запрещен"
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

// Handle GET /api/v1/platform
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	wallet, ok := middleware.WalletFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	resp, err := h.service.Get(r.Context(), wallet)
	if err != nil {
		switch {
		case errors.Is(err, platform.ErrPlatformNotFound):
			h.logger.Warn("GET /platform - Not initialized")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, platform.ErrAccessDenied):
			h.logger.Warn("GET /platform - Access denied: caller=%s", wallet)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /platform - Failed to fetch platform: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

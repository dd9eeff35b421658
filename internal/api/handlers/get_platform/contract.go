package get_platform

import (
	"context"

	"github.com/m04kA/SMC-EscrowService/internal/service/platform/models"
)

type PlatformService interface {
	Get(ctx context.Context, callerWallet string) (*models.PlatformResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package initialize_platform

import (
	"context"

	"github.com/m04kA/SMC-EscrowService/internal/service/platform/models"
)

type PlatformService interface {
	Initialize(ctx context.Context, req *models.InitializeRequest) (*models.PlatformResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

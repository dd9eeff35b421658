package get_salons

import (
	"context"

	"github.com/m04kA/SMC-EscrowService/internal/service/salons/models"
)

type SalonService interface {
	List(ctx context.Context) (*models.SalonListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package complete_reservation

import (
	"context"

	usecase "github.com/m04kA/SMC-EscrowService/internal/usecase/complete_reservation"
)

type CompleteReservationUseCase interface {
	Execute(ctx context.Context, req *usecase.Request) (*usecase.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

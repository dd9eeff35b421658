package complete_reservation

import (
	"time"

	usecase "github.com/m04kA/SMC-EscrowService/internal/usecase/complete_reservation"
)

// CompleteReservationResponse HTTP response model с разбивкой выплат
type CompleteReservationResponse struct {
	ReservationID      int64     `json:"reservationId"`
	Status             string    `json:"status"`
	CompletedAt        time.Time `json:"completedAt"`
	SalonPaymentUnits  int64     `json:"salonPaymentUnits"`
	AppCommissionUnits int64     `json:"appCommissionUnits"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *usecase.Response) *CompleteReservationResponse {
	return &CompleteReservationResponse{
		ReservationID:      resp.ReservationID,
		Status:             resp.Status,
		CompletedAt:        resp.CompletedAt,
		SalonPaymentUnits:  resp.SalonPaymentUnits,
		AppCommissionUnits: resp.AppCommissionUnits,
	}
}

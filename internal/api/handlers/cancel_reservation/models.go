package cancel_reservation

import (
	"time"

	usecase "github.com/m04kA/SMC-EscrowService/internal/usecase/cancel_reservation"
)

// CancelReservationResponse HTTP response model с разбивкой выплат
type CancelReservationResponse struct {
	ReservationID      int64     `json:"reservationId"`
	Status             string    `json:"status"`
	CancelledAt        time.Time `json:"cancelledAt"`
	RefundUnits        int64     `json:"refundUnits"`
	SalonFeeUnits      int64     `json:"salonFeeUnits"`
	AppCommissionUnits int64     `json:"appCommissionUnits"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *usecase.Response) *CancelReservationResponse {
	return &CancelReservationResponse{
		ReservationID:      resp.ReservationID,
		Status:             resp.Status,
		CancelledAt:        resp.CancelledAt,
		RefundUnits:        resp.RefundUnits,
		SalonFeeUnits:      resp.SalonFeeUnits,
		AppCommissionUnits: resp.AppCommissionUnits,
	}
}

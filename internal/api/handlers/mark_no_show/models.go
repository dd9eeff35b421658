package mark_no_show

import (
	usecase "github.com/m04kA/SMC-EscrowService/internal/usecase/mark_no_show"
)

// MarkNoShowResponse HTTP response model с разбивкой выплат
type MarkNoShowResponse struct {
	ReservationID      int64  `json:"reservationId"`
	Status             string `json:"status"`
	SalonPaymentUnits  int64  `json:"salonPaymentUnits"`
	AppCommissionUnits int64  `json:"appCommissionUnits"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *usecase.Response) *MarkNoShowResponse {
	return &MarkNoShowResponse{
		ReservationID:      resp.ReservationID,
		Status:             resp.Status,
		SalonPaymentUnits:  resp.SalonPaymentUnits,
		AppCommissionUnits: resp.AppCommissionUnits,
	}
}

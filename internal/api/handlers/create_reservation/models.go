package create_reservation

import (
	"time"

	usecase "github.com/m04kA/SMC-EscrowService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SalonID         int64     `json:"salonId"`
	ServiceID       int16     `json:"serviceId"`
	AppointmentTime time.Time `json:"appointmentTime"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase.
// Клиентом становится кошелек из токена авторизации.
func (r *CreateReservationRequest) ToUseCaseRequest(clientWallet string) *usecase.Request {
	return &usecase.Request{
		ClientWallet:    clientWallet,
		SalonID:         r.SalonID,
		ServiceID:       r.ServiceID,
		AppointmentTime: r.AppointmentTime,
	}
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	ID               int64     `json:"id"`
	ClientWallet     string    `json:"clientWallet"`
	SalonID          int64     `json:"salonId"`
	SalonOwnerWallet string    `json:"salonOwnerWallet"`
	ServiceID        int16     `json:"serviceId"`
	ServiceName      string    `json:"serviceName"`
	AmountUnits      int64     `json:"amountUnits"`
	AppointmentTime  time.Time `json:"appointmentTime"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *usecase.Response) *CreateReservationResponse {
	return &CreateReservationResponse{
		ID:               resp.ID,
		ClientWallet:     resp.ClientWallet,
		SalonID:          resp.SalonID,
		SalonOwnerWallet: resp.SalonOwnerWallet,
		ServiceID:        resp.ServiceID,
		ServiceName:      resp.ServiceName,
		AmountUnits:      resp.AmountUnits,
		AppointmentTime:  resp.AppointmentTime,
		Status:           resp.Status,
		CreatedAt:        resp.CreatedAt,
	}
}

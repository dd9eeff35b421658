package models

import (
	"time"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
)

// Request модели

// GetUserReservationsRequest запрос на получение бронирований клиента
type GetUserReservationsRequest struct {
	ClientWallet string  `json:"clientWallet"` // Кошелек клиента (из токена)
	Status       *string `json:"status,omitempty"`
}

// GetSalonReservationsRequest запрос на получение бронирований салона
type GetSalonReservationsRequest struct {
	SalonID      int64   `json:"salonId"`
	CallerWallet string  `json:"callerWallet"` // Кошелек вызывающего (из токена)
	Status       *string `json:"status,omitempty"`
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID               int64      `json:"id"`
	ClientWallet     string     `json:"clientWallet"`
	SalonID          int64      `json:"salonId"`
	SalonOwnerWallet string     `json:"salonOwnerWallet"`
	ServiceID        int16      `json:"serviceId"`
	ServiceName      string     `json:"serviceName"`
	AmountUnits      int64      `json:"amountUnits"`
	AppointmentTime  time.Time  `json:"appointmentTime"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:               r.ID,
		ClientWallet:     r.ClientWallet,
		SalonID:          r.SalonID,
		SalonOwnerWallet: r.SalonOwnerWallet,
		ServiceID:        r.ServiceID,
		ServiceName:      r.ServiceName,
		AmountUnits:      r.AmountUnits,
		AppointmentTime:  r.AppointmentTime,
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt,
		CancelledAt:      r.CancelledAt,
		CompletedAt:      r.CompletedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в response
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	result := make([]*ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, FromDomainReservation(r))
	}
	return &ReservationListResponse{
		Reservations: result,
		Total:        len(result),
	}
}

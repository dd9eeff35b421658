package models

import (
	"time"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
)

// Request модели

// ServiceInput описание услуги каталога при регистрации салона
type ServiceInput struct {
	ID              int16  `json:"id"`              // ID услуги внутри каталога салона
	Name            string `json:"name"`            // Название услуги
	PriceUnits      int64  `json:"priceUnits"`      // Цена в единицах леджера
	DurationMinutes int16  `json:"durationMinutes"` // Длительность в минутах
}

// RegisterSalonRequest запрос на регистрацию салона
type RegisterSalonRequest struct {
	OwnerWallet string         `json:"ownerWallet"` // Кошелек владельца (из токена)
	Name        string         `json:"name"`        // Название салона
	Services    []ServiceInput `json:"services"`    // Каталог услуг
}

// ToDomainSalon конвертирует request в domain модель.
// Салон и все услуги каталога создаются активными.
func (r *RegisterSalonRequest) ToDomainSalon() *domain.Salon {
	services := make([]domain.Service, 0, len(r.Services))
	for _, svc := range r.Services {
		services = append(services, domain.Service{
			ID:              svc.ID,
			Name:            svc.Name,
			PriceUnits:      svc.PriceUnits,
			DurationMinutes: svc.DurationMinutes,
			IsActive:        true,
		})
	}
	return &domain.Salon{
		OwnerWallet: r.OwnerWallet,
		Name:        r.Name,
		IsActive:    true,
		Services:    services,
	}
}

// Response модели

// ServiceResponse услуга каталога в ответе
type ServiceResponse struct {
	ID              int16  `json:"id"`
	Name            string `json:"name"`
	PriceUnits      int64  `json:"priceUnits"`
	DurationMinutes int16  `json:"durationMinutes"`
	IsActive        bool   `json:"isActive"`
}

// SalonResponse ответ с данными салона
type SalonResponse struct {
	ID               int64             `json:"id"`
	OwnerWallet      string            `json:"ownerWallet"`
	Name             string            `json:"name"`
	IsActive         bool              `json:"isActive"`
	TotalEarnings    int64             `json:"totalEarnings"`
	ReservationCount int64             `json:"reservationCount"`
	Services         []ServiceResponse `json:"services"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// SalonListResponse список салонов
type SalonListResponse struct {
	Salons []*SalonResponse `json:"salons"`
	Total  int              `json:"total"`
}

// FromDomainSalon конвертирует domain модель в response
func FromDomainSalon(s *domain.Salon) *SalonResponse {
	services := make([]ServiceResponse, 0, len(s.Services))
	for _, svc := range s.Services {
		services = append(services, ServiceResponse{
			ID:              svc.ID,
			Name:            svc.Name,
			PriceUnits:      svc.PriceUnits,
			DurationMinutes: svc.DurationMinutes,
			IsActive:        svc.IsActive,
		})
	}
	return &SalonResponse{
		ID:               s.ID,
		OwnerWallet:      s.OwnerWallet,
		Name:             s.Name,
		IsActive:         s.IsActive,
		TotalEarnings:    s.TotalEarnings,
		ReservationCount: s.ReservationCount,
		Services:         services,
		CreatedAt:        s.CreatedAt,
	}
}

// FromDomainSalonList конвертирует список domain моделей в response
func FromDomainSalonList(salons []*domain.Salon) *SalonListResponse {
	result := make([]*SalonResponse, 0, len(salons))
	for _, s := range salons {
		result = append(result, FromDomainSalon(s))
	}
	return &SalonListResponse{
		Salons: result,
		Total:  len(result),
	}
}

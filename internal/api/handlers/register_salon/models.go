package register_salon

import (
	"github.com/m04kA/SMC-EscrowService/internal/service/salons/models"
)

// ServiceInput HTTP модель услуги каталога
type ServiceInput struct {
	ID              int16  `json:"id"`
	Name            string `json:"name"`
	PriceUnits      int64  `json:"priceUnits"`
	DurationMinutes int16  `json:"durationMinutes"`
}

// RegisterSalonRequest HTTP request model
type RegisterSalonRequest struct {
	Name     string         `json:"name"`
	Services []ServiceInput `json:"services"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса.
// Владельцем становится кошелек из токена авторизации.
func (r *RegisterSalonRequest) ToServiceRequest(ownerWallet string) *models.RegisterSalonRequest {
	services := make([]models.ServiceInput, 0, len(r.Services))
	for _, svc := range r.Services {
		services = append(services, models.ServiceInput{
			ID:              svc.ID,
			Name:            svc.Name,
			PriceUnits:      svc.PriceUnits,
			DurationMinutes: svc.DurationMinutes,
		})
	}
	return &models.RegisterSalonRequest{
		OwnerWallet: ownerWallet,
		Name:        r.Name,
		Services:    services,
	}
}

package salons

import (
	"fmt"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	"github.com/m04kA/SMC-EscrowService/internal/service/salons/models"
)

// validateRegisterRequest валидирует запрос на регистрацию салона
func validateRegisterRequest(req *models.RegisterSalonRequest) error {
	if req.OwnerWallet == "" {
		return fmt.Errorf("%w: ownerWallet is required", ErrInvalidInput)
	}

	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxSalonNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxSalonNameLength)
	}

	if len(req.Services) < domain.MinServicesPerSalon {
		return fmt.Errorf("%w: at least %d service is required", ErrInvalidInput, domain.MinServicesPerSalon)
	}
	if len(req.Services) > domain.MaxServicesPerSalon {
		return fmt.Errorf("%w: at most %d services are allowed", ErrInvalidInput, domain.MaxServicesPerSalon)
	}

	seen := make(map[int16]struct{}, len(req.Services))
	for i, svc := range req.Services {
		if svc.ID <= 0 {
			return fmt.Errorf("%w: service[%d] id must be positive", ErrInvalidInput, i)
		}
		if _, ok := seen[svc.ID]; ok {
			return fmt.Errorf("%w: duplicate service id=%d", ErrInvalidInput, svc.ID)
		}
		seen[svc.ID] = struct{}{}

		if svc.Name == "" {
			return fmt.Errorf("%w: service[%d] name is required", ErrInvalidInput, i)
		}
		if len(svc.Name) > domain.MaxServiceNameLength {
			return fmt.Errorf("%w: service[%d] name exceeds %d characters",
				ErrInvalidInput, i, domain.MaxServiceNameLength)
		}
		if svc.PriceUnits <= 0 {
			return fmt.Errorf("%w: service[%d] price must be positive", ErrInvalidInput, i)
		}
		if svc.DurationMinutes <= 0 {
			return fmt.Errorf("%w: service[%d] duration must be positive", ErrInvalidInput, i)
		}
	}

	return nil
}

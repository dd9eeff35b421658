package domain

import "time"

// Service is a single catalog entry of a salon. Entries are immutable once
// stored; there is no update path.
type Service struct {
	ID              int16
	Name            string
	PriceUnits      int64
	DurationMinutes int16
	IsActive        bool
}

// Salon is a service provider registered on the platform. TotalEarnings and
// ReservationCount are running counters mutated as a side effect of
// reservation transitions.
type Salon struct {
	ID               int64
	OwnerWallet      string
	Name             string
	IsActive         bool
	TotalEarnings    int64
	ReservationCount int64
	Services         []Service
	CreatedAt        time.Time
}

// FindActiveService returns the active catalog entry with the given id,
// or nil when it does not exist or is inactive.
func (s *Salon) FindActiveService(serviceID int16) *Service {
	for i := range s.Services {
		if s.Services[i].ID == serviceID && s.Services[i].IsActive {
			return &s.Services[i]
		}
	}
	return nil
}

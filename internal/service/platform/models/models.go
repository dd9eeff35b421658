package models

import (
	"time"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
)

// Request модели

// InitializeRequest запрос на инициализацию платформы
type InitializeRequest struct {
	AdminWallet    string `json:"adminWallet"`    // Кошелек администратора (из токена)
	TreasuryWallet string `json:"treasuryWallet"` // Кошелек казначейства для комиссий
}

// Response модели

// PlatformResponse ответ с состоянием платформы
type PlatformResponse struct {
	AdminWallet       string    `json:"adminWallet"`
	TreasuryWallet    string    `json:"treasuryWallet"`
	TotalReservations int64     `json:"totalReservations"`
	TotalVolume       int64     `json:"totalVolume"`
	CreatedAt         time.Time `json:"createdAt"`
}

// FromDomainPlatform конвертирует domain модель в response
func FromDomainPlatform(p *domain.Platform) *PlatformResponse {
	return &PlatformResponse{
		AdminWallet:       p.AdminWallet,
		TreasuryWallet:    p.TreasuryWallet,
		TotalReservations: p.TotalReservations,
		TotalVolume:       p.TotalVolume,
		CreatedAt:         p.CreatedAt,
	}
}

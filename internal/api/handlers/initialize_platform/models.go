package initialize_platform

import (
	"github.com/m04kA/SMC-EscrowService/internal/service/platform/models"
)

// InitializePlatformRequest HTTP request model
type InitializePlatformRequest struct {
	TreasuryWallet string `json:"treasuryWallet"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса.
// Администратором становится кошелек из токена авторизации.
func (r *InitializePlatformRequest) ToServiceRequest(adminWallet string) *models.InitializeRequest {
	return &models.InitializeRequest{
		AdminWallet:    adminWallet,
		TreasuryWallet: r.TreasuryWallet,
	}
}

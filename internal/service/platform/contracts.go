package platform

import (
	"context"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
)

// PlatformRepository интерфейс репозитория платформы
type PlatformRepository interface {
	Create(ctx context.Context, p *domain.Platform) (*domain.Platform, error)
	Get(ctx context.Context) (*domain.Platform, error)
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

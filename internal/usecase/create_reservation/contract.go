package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
	IncrementReservationCount(ctx context.Context, id int64) error
}

// PlatformRepository интерфейс репозитория платформы
type PlatformRepository interface {
	Get(ctx context.Context) (*domain.Platform, error)
	IncrementCounters(ctx context.Context, reservations, volume int64) error
}

// LedgerRepository интерфейс леджера балансов
type LedgerRepository interface {
	Transfer(ctx context.Context, from, to string, amount int64) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	ReservationCreated(amountUnits int64)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

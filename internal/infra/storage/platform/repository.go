package platform

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	"github.com/m04kA/SMC-EscrowService/pkg/dbmetrics"
	"github.com/m04kA/SMC-EscrowService/pkg/psqlbuilder"
)

// singletonID платформа хранится единственной строкой с фиксированным id
const singletonID = 1

// Repository репозиторий singleton-записи платформы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платформы
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create инициализирует платформу. Повторная инициализация возвращает
// ErrAlreadyInitialized (PRIMARY KEY по фиксированному id).
func (r *Repository) Create(ctx context.Context, p *domain.Platform) (*domain.Platform, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("platform").
		Columns("id", "admin_wallet", "treasury_wallet", "total_reservations", "total_volume").
		Values(singletonID, p.AdminWallet, p.TreasuryWallet, 0, 0).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrAlreadyInitialized
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.TotalReservations = 0
	p.TotalVolume = 0
	p.CreatedAt = createdAt.Time
	return p, nil
}

// Get возвращает запись платформы
func (r *Repository) Get(ctx context.Context) (*domain.Platform, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"admin_wallet",
		"treasury_wallet",
		"total_reservations",
		"total_volume",
		"created_at",
	).
		From("platform").
		Where("id = ?", singletonID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Platform
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.AdminWallet,
		&p.TreasuryWallet,
		&p.TotalReservations,
		&p.TotalVolume,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlatformNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - execute select: %v", ErrExecQuery, err)
	}
	p.CreatedAt = createdAt.Time
	return &p, nil
}

// IncrementCounters атомарно увеличивает счетчики платформы.
// Инкремент выполняется на стороне БД, без read-modify-write.
func (r *Repository) IncrementCounters(ctx context.Context, reservations, volume int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `UPDATE platform
		SET total_reservations = total_reservations + $1,
		    total_volume = total_volume + $2
		WHERE id = $3`

	res, err := executor.ExecContext(ctx, query, reservations, volume, singletonID)
	if err != nil {
		return fmt.Errorf("%w: IncrementCounters - execute update: %v", ErrExecQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementCounters - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrPlatformNotFound
	}
	return nil
}

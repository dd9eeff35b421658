package salon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	"github.com/m04kA/SMC-EscrowService/pkg/dbmetrics"
	"github.com/m04kA/SMC-EscrowService/pkg/psqlbuilder"
)

// Repository репозиторий салонов и их каталога услуг.
// Записи каталога неизменяемы после сохранения: путь обновления отсутствует.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет салон вместе с каталогом услуг.
// Один салон на кошелек владельца (UNIQUE по owner_wallet).
func (r *Repository) Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("salons").
		Columns("owner_wallet", "name", "is_active", "total_earnings", "reservation_count").
		Values(salon.OwnerWallet, salon.Name, true, 0, 0).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&salon.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: owner=%s", ErrSalonAlreadyExists, salon.OwnerWallet)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	salon.IsActive = true
	salon.CreatedAt = createdAt.Time

	if len(salon.Services) > 0 {
		builder := psqlbuilder.Insert("salon_services").
			Columns("salon_id", "service_id", "name", "price_units", "duration_minutes", "is_active")
		for _, svc := range salon.Services {
			builder = builder.Values(salon.ID, svc.ID, svc.Name, svc.PriceUnits, svc.DurationMinutes, true)
		}
		query, args, err = builder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build services insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Create - execute services insert: %v", ErrExecQuery, err)
		}
		for i := range salon.Services {
			salon.Services[i].IsActive = true
		}
	}

	return salon, nil
}

var salonColumns = []string{
	"id",
	"owner_wallet",
	"name",
	"is_active",
	"total_earnings",
	"reservation_count",
	"created_at",
}

func scanSalon(row squirrel.RowScanner) (*domain.Salon, error) {
	var s domain.Salon
	var createdAt sql.NullTime
	err := row.Scan(
		&s.ID,
		&s.OwnerWallet,
		&s.Name,
		&s.IsActive,
		&s.TotalEarnings,
		&s.ReservationCount,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = createdAt.Time
	return &s, nil
}

// GetByID возвращает салон с каталогом услуг
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSalon(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrSalonNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	if err := r.loadServices(ctx, executor, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListActive возвращает все активные салоны с каталогами
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var salons []*domain.Salon
	for rows.Next() {
		s, err := scanSalon(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan: %v", ErrScanRow, err)
		}
		salons = append(salons, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows: %v", ErrExecQuery, err)
	}

	for _, s := range salons {
		if err := r.loadServices(ctx, executor, s); err != nil {
			return nil, err
		}
	}
	return salons, nil
}

// loadServices подгружает каталог услуг салона
func (r *Repository) loadServices(ctx context.Context, executor DBExecutor, s *domain.Salon) error {
	query, args, err := psqlbuilder.Select("service_id", "name", "price_units", "duration_minutes", "is_active").
		From("salon_services").
		Where(squirrel.Eq{"salon_id": s.ID}).
		OrderBy("service_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadServices - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	s.Services = s.Services[:0]
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.PriceUnits, &svc.DurationMinutes, &svc.IsActive); err != nil {
			return fmt.Errorf("%w: loadServices - scan: %v", ErrScanRow, err)
		}
		s.Services = append(s.Services, svc)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadServices - rows: %v", ErrExecQuery, err)
	}
	return nil
}

// IncrementReservationCount атомарно увеличивает счетчик бронирований салона
func (r *Repository) IncrementReservationCount(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `UPDATE salons SET reservation_count = reservation_count + 1 WHERE id = $1`
	res, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: IncrementReservationCount - execute update: %v", ErrExecQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementReservationCount - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%d", ErrSalonNotFound, id)
	}
	return nil
}

// AddEarnings атомарно увеличивает накопленный заработок салона
func (r *Repository) AddEarnings(ctx context.Context, id int64, amountUnits int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `UPDATE salons SET total_earnings = total_earnings + $1 WHERE id = $2`
	res, err := executor.ExecContext(ctx, query, amountUnits, id)
	if err != nil {
		return fmt.Errorf("%w: AddEarnings - execute update: %v", ErrExecQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AddEarnings - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%d", ErrSalonNotFound, id)
	}
	return nil
}

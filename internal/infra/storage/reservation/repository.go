package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
	"github.com/m04kA/SMC-EscrowService/pkg/dbmetrics"
	"github.com/m04kA/SMC-EscrowService/pkg/psqlbuilder"
)

// Repository репозиторий бронирований.
// Бронирования никогда не удаляются: терминальные записи остаются как
// аудиторский след. Меняются только status и связанные временные метки.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var reservationColumns = []string{
	"id",
	"client_wallet",
	"salon_id",
	"salon_owner_wallet",
	"service_id",
	"service_name",
	"amount_units",
	"appointment_time",
	"created_at",
	"status",
	"cancelled_at",
	"completed_at",
}

func scanReservation(row squirrel.RowScanner) (*domain.Reservation, error) {
	var r domain.Reservation
	var status string
	var createdAt sql.NullTime
	var cancelledAt, completedAt sql.NullTime
	err := row.Scan(
		&r.ID,
		&r.ClientWallet,
		&r.SalonID,
		&r.SalonOwnerWallet,
		&r.ServiceID,
		&r.ServiceName,
		&r.AmountUnits,
		&r.AppointmentTime,
		&createdAt,
		&status,
		&cancelledAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}
	r.CreatedAt = createdAt.Time
	r.Status = domain.ReservationStatus(status)
	if cancelledAt.Valid {
		r.CancelledAt = &cancelledAt.Time
	}
	if completedAt.Valid {
		r.CompletedAt = &completedAt.Time
	}
	return &r, nil
}

// Create сохраняет новое бронирование со снапшотом услуги.
// Ключ адресации (client_wallet, salon_id, appointment_time) уникален.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"client_wallet",
			"salon_id",
			"salon_owner_wallet",
			"service_id",
			"service_name",
			"amount_units",
			"appointment_time",
			"status",
		).
		Values(
			res.ClientWallet,
			res.SalonID,
			res.SalonOwnerWallet,
			res.ServiceID,
			res.ServiceName,
			res.AmountUnits,
			res.AppointmentTime,
			domain.StatusConfirmed,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: client=%s salon=%d time=%s",
				ErrDuplicateReservation, res.ClientWallet, res.SalonID, res.AppointmentTime)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	res.CreatedAt = createdAt.Time
	res.Status = domain.StatusConfirmed
	return res, nil
}

// GetByID возвращает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate возвращает бронирование, блокируя строку (FOR UPDATE)
// до конца текущей транзакции. Из двух конфликтующих переходов второй
// дождется коммита первого и увидит терминальный статус.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrReservationNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByID - scan: %v", ErrScanRow, err)
	}
	return res, nil
}

// SetCancelled переводит бронирование в статус cancelled, фиксируя время отмены
func (r *Repository) SetCancelled(ctx context.Context, id int64, at time.Time) error {
	return r.setTerminal(ctx, id, domain.StatusCancelled, map[string]interface{}{"cancelled_at": at})
}

// SetCompleted переводит бронирование в статус completed, фиксируя время завершения
func (r *Repository) SetCompleted(ctx context.Context, id int64, at time.Time) error {
	return r.setTerminal(ctx, id, domain.StatusCompleted, map[string]interface{}{"completed_at": at})
}

// SetNoShow переводит бронирование в статус no_show.
// Время завершения не фиксируется, только терминальный статус.
func (r *Repository) SetNoShow(ctx context.Context, id int64) error {
	return r.setTerminal(ctx, id, domain.StatusNoShow, nil)
}

// setTerminal выполняет единственный допустимый переход confirmed -> терминальный.
// Условие status = confirmed в WHERE гарантирует, что переход не перезапишет
// уже терминальную запись даже вне блокировки строки.
func (r *Repository) setTerminal(ctx context.Context, id int64, status domain.ReservationStatus, extra map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("reservations").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed})
	for col, val := range extra {
		builder = builder.Set(col, val)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: setTerminal - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: setTerminal - execute update: %v", ErrExecQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: setTerminal - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%d target=%s", ErrInvalidStatus, id, status)
	}
	return nil
}

// ListByClient возвращает бронирования клиента, опционально по статусу
func (r *Repository) ListByClient(ctx context.Context, clientWallet string, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"client_wallet": clientWallet})
	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}
	return r.list(ctx, builder)
}

// ListBySalon возвращает бронирования салона, опционально по статусу
func (r *Repository) ListBySalon(ctx context.Context, salonID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"salon_id": salonID})
	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}
	return r.list(ctx, builder)
}

func (r *Repository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.OrderBy("appointment_time DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var reservations []*domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows: %v", ErrExecQuery, err)
	}
	return reservations, nil
}

package ledger

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-EscrowService/pkg/dbmetrics"
	"github.com/m04kA/SMC-EscrowService/pkg/psqlbuilder"
)

// Repository репозиторий балансового леджера.
// Счета идентифицируются адресом кошелька; балансы неотрицательные
// (CHECK constraint в схеме). Балансы меняются только через Transfer.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория леджера
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Transfer атомарно перемещает amount со счета from на счет to.
// Списание условное (balance >= amount): если средств не хватает, запрос
// не затрагивает ни одной строки и возвращается ErrInsufficientFunds,
// частичного списания не бывает. Вызывается внутри транзакции перехода,
// поэтому либо фиксируются все ноги выплаты, либо ни одной.
func (r *Repository) Transfer(ctx context.Context, from, to string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: Transfer - got %d", ErrInvalidAmount, amount)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Условное списание
	query, args, err := psqlbuilder.Update("accounts").
		Set("balance", squirrel.Expr("balance - ?", amount)).
		Where(squirrel.Eq{"address": from}).
		Where(squirrel.Expr("balance >= ?", amount)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Transfer - build debit query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Transfer - execute debit: %v", ErrExecQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Transfer - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: Transfer - from=%s amount=%d", ErrInsufficientFunds, from, amount)
	}

	// Зачисление; счет получателя создается при первом зачислении
	query, args, err = psqlbuilder.Insert("accounts").
		Columns("address", "balance").
		Values(to, amount).
		Suffix("ON CONFLICT (address) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Transfer - build credit query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Transfer - execute credit: %v", ErrExecQuery, err)
	}

	return nil
}

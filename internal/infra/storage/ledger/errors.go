package ledger

import "errors"

var (
	// ErrInsufficientFunds возвращается, когда на счете недостаточно средств для списания
	ErrInsufficientFunds = errors.New("ledger.repository: insufficient funds")

	// ErrInvalidAmount возвращается при попытке перевода неположительной суммы
	ErrInvalidAmount = errors.New("ledger.repository: amount must be positive")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ledger.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ledger.repository: failed to execute query")
)

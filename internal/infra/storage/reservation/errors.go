package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrDuplicateReservation возвращается, когда бронирование с таким
	// ключом (клиент, салон, время записи) уже существует
	ErrDuplicateReservation = errors.New("reservation.repository: duplicate reservation")

	// ErrInvalidStatus возвращается, когда переход невозможен из текущего статуса
	ErrInvalidStatus = errors.New("reservation.repository: invalid reservation status for transition")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)

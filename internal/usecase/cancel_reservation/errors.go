package cancel_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrNotReservationClient возвращается, когда отменить пытается не клиент бронирования
	ErrNotReservationClient = errors.New("cancel_reservation: caller is not the reservation client")

	// ErrAlreadyFinalized возвращается, когда бронирование уже в терминальном статусе
	ErrAlreadyFinalized = errors.New("cancel_reservation: reservation already finalized")

	// ErrPlatformNotInitialized возвращается, когда платформа еще не инициализирована
	ErrPlatformNotInitialized = errors.New("cancel_reservation: platform not initialized")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)

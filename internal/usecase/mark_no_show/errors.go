package mark_no_show

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("mark_no_show: reservation not found")

	// ErrNotSalonOwner возвращается, когда неявку отмечает не владелец салона
	ErrNotSalonOwner = errors.New("mark_no_show: caller is not the salon owner")

	// ErrAlreadyFinalized возвращается, когда бронирование уже в терминальном статусе
	ErrAlreadyFinalized = errors.New("mark_no_show: reservation already finalized")

	// ErrTooEarlyForNoShow возвращается, когда льготный период после визита еще не истек
	ErrTooEarlyForNoShow = errors.New("mark_no_show: grace period has not elapsed yet")

	// ErrPlatformNotInitialized возвращается, когда платформа еще не инициализирована
	ErrPlatformNotInitialized = errors.New("mark_no_show: platform not initialized")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("mark_no_show: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("mark_no_show: internal error")
)

package complete_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("complete_reservation: reservation not found")

	// ErrNotSalonOwner возвращается, когда завершить пытается не владелец салона
	ErrNotSalonOwner = errors.New("complete_reservation: caller is not the salon owner")

	// ErrAlreadyFinalized возвращается, когда бронирование уже в терминальном статусе
	ErrAlreadyFinalized = errors.New("complete_reservation: reservation already finalized")

	// ErrAppointmentNotYetDue возвращается при попытке завершить визит до его начала
	ErrAppointmentNotYetDue = errors.New("complete_reservation: appointment time has not arrived yet")

	// ErrPlatformNotInitialized возвращается, когда платформа еще не инициализирована
	ErrPlatformNotInitialized = errors.New("complete_reservation: platform not initialized")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_reservation: internal error")
)

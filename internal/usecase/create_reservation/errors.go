package create_reservation

import "errors"

var (
	// ErrPlatformNotInitialized возвращается, когда платформа еще не инициализирована
	ErrPlatformNotInitialized = errors.New("create_reservation: platform not initialized")

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_reservation: salon not found")

	// ErrSalonInactive возвращается, когда салон деактивирован
	ErrSalonInactive = errors.New("create_reservation: salon is not active")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrAppointmentInPast возвращается, когда время визита не в будущем
	ErrAppointmentInPast = errors.New("create_reservation: appointment time must be in the future")

	// ErrDuplicateReservation возвращается при повторном бронировании
	// того же салона на то же время тем же клиентом
	ErrDuplicateReservation = errors.New("create_reservation: duplicate reservation")

	// ErrInsufficientFunds возвращается, когда на кошельке клиента не хватает средств
	ErrInsufficientFunds = errors.New("create_reservation: insufficient funds")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

package platform

import "errors"

var (
	// ErrAlreadyInitialized возвращается при повторной инициализации платформы
	ErrAlreadyInitialized = errors.New("platform already initialized")

	// ErrPlatformNotFound возвращается, когда платформа еще не инициализирована
	ErrPlatformNotFound = errors.New("platform not initialized")

	// ErrAccessDenied возвращается, когда статистику запрашивает не администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

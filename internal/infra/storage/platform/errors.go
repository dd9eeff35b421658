package platform

import "errors"

var (
	// ErrPlatformNotFound возвращается, когда платформа еще не инициализирована
	ErrPlatformNotFound = errors.New("platform.repository: platform not initialized")

	// ErrAlreadyInitialized возвращается при повторной инициализации платформы
	ErrAlreadyInitialized = errors.New("platform.repository: platform already initialized")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("platform.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("platform.repository: failed to execute query")
)

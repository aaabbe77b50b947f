package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (нет токена, неверный токен).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда викторина заблокирована для пользователя
	// (не выполнено условие разблокировки).
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, повторная инициализация викторин).
	ErrConflict = errors.New("resource state conflict")

	// ErrExternalService используется для ошибок внешних сервисов (LLM API, blockchain explorer).
	// Вызывающий код решает: подставить fallback или пробросить выше.
	ErrExternalService = errors.New("external service failure")
)

// Package apperror определяет единый тип ошибки уровня приложения,
// несущий HTTP-статус, человеко‑читаемое сообщение и опциональный список
// дополнительных ошибок. Обработчики приводят любую ошибку к этому типу
// и формируют из него единый конверт ответа.
package apperror

import (
	"errors"
	"net/http"
)

// Error структурированная ошибка приложения.
type Error struct {
	Code    int      // HTTP-статус ответа
	Message string   // Сообщение для клиента
	Errs    []string // Дополнительные ошибки (например, результаты валидации)
}

// Error реализует интерфейс error.
func (e *Error) Error() string {
	return e.Message
}

// New создает ошибку с указанным статусом и сообщением.
func New(code int, message string, errs ...string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Errs:    errs,
	}
}

// BadRequest создает ошибку со статусом 400.
func BadRequest(message string, errs ...string) *Error {
	return New(http.StatusBadRequest, message, errs...)
}

// Unauthorized создает ошибку со статусом 401.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// NotFound создает ошибку со статусом 404.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Internal создает ошибку со статусом 500.
func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// From приводит произвольную ошибку к *Error. Если в цепочке ошибок
// нет *Error, возвращается ошибка со статусом 500 и нейтральным сообщением,
// текст исходной ошибки клиенту не раскрывается.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("something went wrong")
}

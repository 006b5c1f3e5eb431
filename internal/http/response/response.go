// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Каждый ответ сервера —
// успешный или нет — оборачивается в единый конверт со статусом, данными,
// сообщением и признаком успеха.
package response

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/videonest/backend/internal/lib/apperror"
)

// Response описывает конверт успешного JSON‑ответа сервера.
type Response struct {
	StatusCode int    `json:"statusCode"` // HTTP-статус, продублированный в теле
	Data       any    `json:"data"`       // Данные ответа
	Message    string `json:"message"`    // Сообщение для клиента
	Success    bool   `json:"success"`    // Признак успеха, всегда true
}

// ErrorResponse описывает конверт ответа с ошибкой.
// Data всегда null, Success всегда false, Errors — список дополнительных
// ошибок (может быть пустым, но присутствует в теле всегда).
type ErrorResponse struct {
	StatusCode int      `json:"statusCode" example:"400"`
	Data       any      `json:"data"`
	Message    string   `json:"message" example:"all fields are required"`
	Success    bool     `json:"success" example:"false"`
	Errors     []string `json:"errors"`
}

// OK возвращает успешный конверт с данными и сообщением.
func OK(statusCode int, data any, message string) Response {
	return Response{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	}
}

// Err формирует конверт ошибки из структурированной ошибки приложения.
func Err(appErr *apperror.Error) ErrorResponse {
	errs := appErr.Errs
	if errs == nil {
		errs = []string{}
	}
	return ErrorResponse{
		StatusCode: appErr.Code,
		Data:       nil,
		Message:    appErr.Message,
		Success:    false,
		Errors:     errs,
	}
}

// RenderError записывает в ответ конверт ошибки, приводя произвольную
// ошибку к apperror.Error (неизвестные ошибки становятся 500).
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.From(err)
	render.Status(r, appErr.Code)
	render.JSON(w, r, Err(appErr))
}

// ValidationError формирует ошибку 400 на основе ошибок валидации.
// Каждое нарушение превращается в человеко‑читаемый текст и попадает
// в список Errors конверта.
func ValidationError(errs validator.ValidationErrors) *apperror.Error {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return apperror.New(http.StatusBadRequest, "validation failed", errsMsgs...)
}

// Package apperror определяет ошибки уровня приложения,
// по которым HTTP-обработчики выбирают код ответа.
// Ошибки хранилища и сервисов оборачиваются в эти сентинелы через %w.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound — запрошенный объект не существует.
	ErrNotFound = errors.New("not found")
	// ErrForbidden — операция запрещена политикой доступа.
	// Текст не раскрывает, существует ли объект.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation — некорректные входные данные.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate — нарушение ограничения уникальности в базе.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrExternal — сбой внешнего сервиса (платёжный провайдер).
	ErrExternal = errors.New("external service error")
)

// FieldError описывает ошибку валидации конкретного поля.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Msg)
}

// Unwrap позволяет errors.Is находить ErrValidation у ошибок полей.
func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// NewFieldError создаёт ошибку валидации поля.
func NewFieldError(field, msg string) error {
	return &FieldError{Field: field, Msg: msg}
}

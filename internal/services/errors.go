package services

import (
	"errors"
	"strings"

	"theinsight/internal/repository"
	"theinsight/internal/validation"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidPosition    = errors.New(`Position must be either "main" or "second"`)
	ErrCommentsDisabled   = errors.New("Comments are not allowed for this article")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInactiveUser       = errors.New("Account is disabled")
)

// NotFoundError несёт имя сущности для сообщения клиенту и совпадает с ErrNotFound через errors.Is.
type NotFoundError struct{ Entity string }

func (e *NotFoundError) Error() string        { return e.Entity + " not found" }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(entity string) error { return &NotFoundError{Entity: entity} }

// ValidationError: ошибки валидации входных данных по полям.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func invalid(field, message string) error {
	return &ValidationError{Fields: []validation.FieldError{{Field: field, Message: message}}}
}

func validate(v any) error {
	if fields := validation.Struct(v); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// mapRepoErr переводит repository.ErrNotFound в NotFoundError нужной сущности.
func mapRepoErr(err error, entity string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(entity)
	}
	return err
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken         = errors.New("the user with this email already exists in the system")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrInactiveAccount    = errors.New("inactive user")
	ErrIncorrectPassword  = errors.New("incorrect current password")
	ErrSamePassword       = errors.New("new password cannot be the same as the old password")
	ErrForbidden          = errors.New("not authorized to access this item")
	ErrNotFound           = errors.New("not found")
)

// ValidationError описывает некорректное значение конкретного поля запроса.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid создаёт ValidationError для поля.
func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// AsValidation извлекает ValidationError из цепочки ошибок.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"GroceryWise/internal/service"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Message: ответ с текстовым сообщением.
type Message struct {
	Message string `json:"message"`
}

// ErrorResponse: тело ответа об ошибке.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

// writeError переводит ошибку сервиса в HTTP-ответ.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	if ve, ok := service.AsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: ve.Message, Field: ve.Field})
		return
	}

	switch {
	case errors.Is(err, service.ErrEmailTaken):
		writeDetail(w, http.StatusBadRequest, "The user with this email already exists in the system.")
	case errors.Is(err, service.ErrIncorrectPassword):
		writeDetail(w, http.StatusBadRequest, "Incorrect current password")
	case errors.Is(err, service.ErrSamePassword):
		writeDetail(w, http.StatusBadRequest, "New password cannot be the same as the old password")
	case errors.Is(err, service.ErrInactiveAccount):
		writeDetail(w, http.StatusBadRequest, "Inactive user")
	case errors.Is(err, service.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
	case errors.Is(err, service.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
	case errors.Is(err, service.ErrForbidden):
		writeDetail(w, http.StatusForbidden, "Not authorized to access this item")
	case errors.Is(err, service.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Not found")
	default:
		logger.Errorw("request failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON читает JSON-тело запроса; ошибки формата становятся ValidationError.
// Пустое тело допустимо, если allowEmpty.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(dst)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		if allowEmpty {
			return nil
		}
		return service.Invalid("body", "request body is required")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return service.Invalid(typeErr.Field, "invalid type, expected "+typeErr.Type.String())
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return service.Invalid("body", "request body too large")
	}
	return service.Invalid("body", "malformed JSON")
}

// Optional различает отсутствующее поле, явный null и значение.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// Ptr возвращает указатель на значение или nil, если поле не передано.
// Явный null даёт ValidationError: колонка NOT NULL.
func (o Optional[T]) Ptr(field string) (*T, error) {
	if !o.Set {
		return nil, nil
	}
	if o.Null {
		return nil, service.Invalid(field, "must not be null")
	}
	v := o.Value
	return &v, nil
}

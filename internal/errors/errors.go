package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/repository"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Kind int

const (
	KindInternal Kind = iota
	KindInvalidIdentifier
	KindNotFound
	KindInvalidBody
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidIdentifier:
		return "invalid_identifier"
	case KindNotFound:
		return "not_found"
	case KindInvalidBody:
		return "invalid_body"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

type ServiceError struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

func NewServiceError(kind Kind, message string) *ServiceError {
	return &ServiceError{
		Kind:    kind,
		Message: message,
		Time:    time.Now(),
	}
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("kind: %s, message: %s, time: %s",
		e.Kind.String(), e.Message, e.Time.Format(time.RFC3339))
}

// Is matches by kind so errors.Is(err, ErrInvalidBody) works for any message.
func (e *ServiceError) Is(target error) bool {
	var t *ServiceError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func (e *ServiceError) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidIdentifier, KindInvalidBody:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (e *ServiceError) GRPCCode() codes.Code {
	switch e.Kind {
	case KindInvalidIdentifier, KindInvalidBody:
		return codes.InvalidArgument
	case KindNotFound:
		return codes.NotFound
	case KindUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

func (e *ServiceError) ToGRPCStatus() error {
	return status.Error(e.GRPCCode(), e.Message)
}

var (
	ErrInvalidIdentifier = NewServiceError(KindInvalidIdentifier, "invalid identifier")
	ErrNotFound          = NewServiceError(KindNotFound, "not found")
	ErrInvalidBody       = NewServiceError(KindInvalidBody, "Invalid data")
	ErrUnavailable       = NewServiceError(KindUnavailable, "database unavailable")
	ErrInternalError     = NewServiceError(KindInternal, "internal server error")
)

func InvalidIdentifier(entity, raw string) *ServiceError {
	return NewServiceError(KindInvalidIdentifier, fmt.Sprintf("%s %s invalid", entity, raw))
}

func NotFound(entity string, id int64) *ServiceError {
	return NewServiceError(KindNotFound, fmt.Sprintf("%s %d not found", entity, id))
}

func InvalidBody() *ServiceError {
	return NewServiceError(KindInvalidBody, "Invalid data")
}

// InvalidParameter is reported for a query parameter outside its allowed set.
func InvalidParameter(name, value string) *ServiceError {
	return NewServiceError(KindInvalidBody, fmt.Sprintf("%s %s invalid", name, value))
}

// WrapRepositoryError переводит ошибки репозитория в ServiceError.
// entity и id используются только для сообщения NotFound.
func WrapRepositoryError(err error, entity string, id int64) *ServiceError {
	if err == nil {
		return nil
	}

	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr
	}

	switch {
	case errors.Is(err, repository.ErrGoalNotFound) && entity != "Goal":
		return NewServiceError(KindNotFound, "goal not found")
	case repository.IsNotFoundError(err):
		return NotFound(entity, id)
	case errors.Is(err, repository.ErrInvalidData), repository.IsConstraintError(err):
		return InvalidBody()
	case repository.IsConnectionError(err):
		return NewServiceError(KindUnavailable, ErrUnavailable.Message)
	default:
		return NewServiceError(KindInternal, fmt.Sprintf("repository error: %v", err))
	}
}

// FromError достаёт ServiceError из цепочки или превращает err во внутреннюю ошибку.
func FromError(err error) *ServiceError {
	if err == nil {
		return nil
	}
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr
	}
	return NewServiceError(KindInternal, err.Error())
}

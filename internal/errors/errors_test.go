package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Raisondetr3/tasklist-service/internal/repository"
	"google.golang.org/grpc/codes"
)

func TestServiceError_IsMatchesByKind(t *testing.T) {
	if !errors.Is(InvalidBody(), ErrInvalidBody) {
		t.Fatalf("InvalidBody must match ErrInvalidBody")
	}
	if !errors.Is(InvalidParameter("sort", "up"), ErrInvalidBody) {
		t.Fatalf("InvalidParameter must match ErrInvalidBody")
	}
	if !errors.Is(InvalidIdentifier("Task", "abc"), ErrInvalidIdentifier) {
		t.Fatalf("InvalidIdentifier must match ErrInvalidIdentifier")
	}
	if !errors.Is(fmt.Errorf("wrapped: %w", NotFound("Goal", 3)), ErrNotFound) {
		t.Fatalf("wrapped NotFound must match ErrNotFound")
	}
	if errors.Is(NotFound("Task", 1), ErrInvalidBody) {
		t.Fatalf("different kinds must not match")
	}
}

func TestWrapRepositoryError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		want       *ServiceError
		wantStatus int
		wantCode   codes.Code
		wantMsg    string
	}{
		{
			name:       "not found",
			err:        repository.WrapError("get", repository.ErrTaskNotFound),
			want:       ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   codes.NotFound,
			wantMsg:    "Task 7 not found",
		},
		{
			name:       "constraint",
			err:        repository.WrapError("create", repository.ErrConstraintViolation),
			want:       ErrInvalidBody,
			wantStatus: http.StatusBadRequest,
			wantCode:   codes.InvalidArgument,
			wantMsg:    "Invalid data",
		},
		{
			name:       "connection",
			err:        repository.WrapError("list", repository.ErrDatabaseConnection),
			want:       ErrUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   codes.Unavailable,
			wantMsg:    "database unavailable",
		},
		{
			name:       "other",
			err:        errors.New("boom"),
			want:       ErrInternalError,
			wantStatus: http.StatusInternalServerError,
			wantCode:   codes.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapRepositoryError(tt.err, "Task", 7)

			if !errors.Is(got, tt.want) {
				t.Fatalf("expected kind %s, got %s", tt.want.Kind, got.Kind)
			}
			if got.HTTPStatus() != tt.wantStatus {
				t.Fatalf("HTTPStatus() = %d, want %d", got.HTTPStatus(), tt.wantStatus)
			}
			if got.GRPCCode() != tt.wantCode {
				t.Fatalf("GRPCCode() = %v, want %v", got.GRPCCode(), tt.wantCode)
			}
			if tt.wantMsg != "" && got.Message != tt.wantMsg {
				t.Fatalf("Message = %q, want %q", got.Message, tt.wantMsg)
			}
		})
	}
}

func TestWrapRepositoryError_Nil(t *testing.T) {
	if WrapRepositoryError(nil, "Task", 1) != nil {
		t.Fatalf("nil error must stay nil")
	}
}

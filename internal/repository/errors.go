package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrGoalNotFound        = errors.New("goal not found")
	ErrDatabaseConnection  = errors.New("database connection error")
	ErrInvalidData         = errors.New("invalid data provided")
	ErrConstraintViolation = errors.New("database constraint violation")
	ErrTransactionFailed   = errors.New("transaction failed")
)

type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RepositoryError{Op: op, Err: err}
}

// HandlePgxError maps pgx errors onto repository sentinels. notFound is
// returned for pgx.ErrNoRows so each entity reports its own sentinel.
func HandlePgxError(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return WrapError(op, notFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			// task.goal_id -> goal.id
			return WrapError(op, ErrGoalNotFound)
		case "23502", "23514", "23505":
			return WrapError(op, ErrConstraintViolation)
		case "08000", "08003", "08006":
			return WrapError(op, ErrDatabaseConnection)
		case "22P02":
			return WrapError(op, ErrInvalidData)
		default:
			return WrapError(op, fmt.Errorf("database error [%s]: %s", pgErr.Code, pgErr.Message))
		}
	}

	return WrapError(op, err)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTaskNotFound) || errors.Is(err, ErrGoalNotFound)
}

func IsConstraintError(err error) bool {
	return errors.Is(err, ErrConstraintViolation)
}

func IsConnectionError(err error) bool {
	return errors.Is(err, ErrDatabaseConnection)
}

package repository

import (
	"errors"
	"testing"

	"github.com/Raisondetr3/tasklist-service/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestBuildListTasksQuery(t *testing.T) {
	title := "groceries"

	tests := []struct {
		name     string
		filter   model.ListTasksFilter
		wantSQL  string
		wantArgs int
	}{
		{
			name:    "no filter",
			filter:  model.ListTasksFilter{},
			wantSQL: `SELECT ` + taskColumns + ` FROM task ORDER BY id ASC`,
		},
		{
			name:     "title only",
			filter:   model.ListTasksFilter{Title: &title},
			wantSQL:  `SELECT ` + taskColumns + ` FROM task WHERE title = $1 ORDER BY id ASC`,
			wantArgs: 1,
		},
		{
			name:     "title and desc",
			filter:   model.ListTasksFilter{Title: &title, Sort: model.SortDesc},
			wantSQL:  `SELECT ` + taskColumns + ` FROM task WHERE title = $1 ORDER BY title DESC, id ASC`,
			wantArgs: 1,
		},
		{
			name:    "asc",
			filter:  model.ListTasksFilter{Sort: model.SortAsc},
			wantSQL: `SELECT ` + taskColumns + ` FROM task ORDER BY title ASC, id ASC`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildListTasksQuery(tt.filter)
			if sql != tt.wantSQL {
				t.Fatalf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if len(args) != tt.wantArgs {
				t.Fatalf("len(args) = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}
}

func TestHandlePgxError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, ErrTaskNotFound},
		{"foreign key", &pgconn.PgError{Code: "23503"}, ErrGoalNotFound},
		{"not null", &pgconn.PgError{Code: "23502"}, ErrConstraintViolation},
		{"connection", &pgconn.PgError{Code: "08006"}, ErrDatabaseConnection},
		{"bad text", &pgconn.PgError{Code: "22P02"}, ErrInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandlePgxError("op", tt.err, ErrTaskNotFound)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			var repoErr *RepositoryError
			if !errors.As(err, &repoErr) || repoErr.Op != "op" {
				t.Fatalf("expected RepositoryError with op, got %#v", err)
			}
		})
	}

	if HandlePgxError("op", nil, ErrTaskNotFound) != nil {
		t.Fatalf("nil error must stay nil")
	}
}

func TestDistinct(t *testing.T) {
	got := distinct([]int64{3, 1, 3, 2, 1})
	want := []int64{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("distinct = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("distinct = %v, want %v", got, want)
		}
	}
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) (*model.Task, error)
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	List(ctx context.Context, filter model.ListTasksFilter) ([]*model.Task, error)
	Update(ctx context.Context, task *model.Task) (*model.Task, error)
	SetCompletedAt(ctx context.Context, id int64, completedAt *time.Time) (*model.Task, error)
	DeleteByID(ctx context.Context, id int64) error
	ListByGoal(ctx context.Context, goalID int64) ([]*model.Task, error)
}

type taskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) TaskRepository {
	return &taskRepository{
		db: db,
	}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	start := time.Now()
	q := `
		INSERT INTO task (title, description, completed_at, goal_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + taskColumns

	created, err := scanTask(r.db.QueryRow(ctx, q,
		task.Title, task.Description, task.CompletedAt, task.GoalID,
	))

	duration := time.Since(start)

	if err != nil {
		logCriticalDBError(ctx, "create_task", q, duration, err)
		return nil, HandlePgxError("create_task", err, ErrTaskNotFound)
	}

	logSlowQuery(ctx, "create_task", duration)
	return created, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	start := time.Now()
	q := `SELECT ` + taskColumns + ` FROM task WHERE id = $1`

	task, err := scanTask(r.db.QueryRow(ctx, q, id))

	duration := time.Since(start)

	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logCriticalDBError(ctx, "get_task_by_id", q, duration, err)
		}
		return nil, HandlePgxError("get_task_by_id", err, ErrTaskNotFound)
	}

	logSlowQuery(ctx, "get_task_by_id", duration)
	return task, nil
}

// List returns tasks matching filter. Without a sort order the rows come
// back in id order.
func (r *taskRepository) List(ctx context.Context, filter model.ListTasksFilter) ([]*model.Task, error) {
	q, args := buildListTasksQuery(filter)
	return r.queryTasks(ctx, "list_tasks", q, args...)
}

func buildListTasksQuery(filter model.ListTasksFilter) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, 1)

	sb.WriteString(`SELECT ` + taskColumns + ` FROM task`)

	if filter.Title != nil {
		args = append(args, *filter.Title)
		fmt.Fprintf(&sb, " WHERE title = $%d", len(args))
	}

	switch filter.Sort {
	case model.SortAsc:
		sb.WriteString(" ORDER BY title ASC, id ASC")
	case model.SortDesc:
		sb.WriteString(" ORDER BY title DESC, id ASC")
	default:
		sb.WriteString(" ORDER BY id ASC")
	}

	return sb.String(), args
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	start := time.Now()
	q := `
		UPDATE task
		SET title = $2, description = $3
		WHERE id = $1
		RETURNING ` + taskColumns

	updated, err := scanTask(r.db.QueryRow(ctx, q, task.ID, task.Title, task.Description))

	duration := time.Since(start)

	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logCriticalDBError(ctx, "update_task", q, duration, err)
		}
		return nil, HandlePgxError("update_task", err, ErrTaskNotFound)
	}

	logSlowQuery(ctx, "update_task", duration)
	return updated, nil
}

// SetCompletedAt stores completedAt as is; nil marks the task incomplete.
func (r *taskRepository) SetCompletedAt(ctx context.Context, id int64, completedAt *time.Time) (*model.Task, error) {
	start := time.Now()
	q := `
		UPDATE task
		SET completed_at = $2
		WHERE id = $1
		RETURNING ` + taskColumns

	updated, err := scanTask(r.db.QueryRow(ctx, q, id, completedAt))

	duration := time.Since(start)

	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logCriticalDBError(ctx, "set_task_completed_at", q, duration, err)
		}
		return nil, HandlePgxError("set_task_completed_at", err, ErrTaskNotFound)
	}

	logSlowQuery(ctx, "set_task_completed_at", duration)
	return updated, nil
}

func (r *taskRepository) DeleteByID(ctx context.Context, id int64) error {
	start := time.Now()
	q := `DELETE FROM task WHERE id = $1`

	commandTag, err := r.db.Exec(ctx, q, id)
	duration := time.Since(start)

	if err != nil {
		logCriticalDBError(ctx, "delete_task", q, duration, err)
		return HandlePgxError("delete_task", err, ErrTaskNotFound)
	}

	if commandTag.RowsAffected() == 0 {
		return WrapError("delete_task", ErrTaskNotFound)
	}

	logSlowQuery(ctx, "delete_task", duration)
	return nil
}

func (r *taskRepository) ListByGoal(ctx context.Context, goalID int64) ([]*model.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM task WHERE goal_id = $1 ORDER BY id ASC`
	return r.queryTasks(ctx, "list_tasks_by_goal", q, goalID)
}

func (r *taskRepository) queryTasks(ctx context.Context, op, q string, args ...any) ([]*model.Task, error) {
	start := time.Now()

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		logCriticalDBError(ctx, op, q, time.Since(start), err)
		return nil, HandlePgxError(op, err, ErrTaskNotFound)
	}
	defer rows.Close()

	tasks := make([]*model.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			logCriticalDBError(ctx, op+"_scan", "", time.Since(start), err)
			return nil, HandlePgxError(op+"_scan", err, ErrTaskNotFound)
		}
		tasks = append(tasks, task)
	}

	duration := time.Since(start)
	if err = rows.Err(); err != nil {
		logCriticalDBError(ctx, op+"_iteration", "", duration, err)
		return nil, HandlePgxError(op+"_iteration", err, ErrTaskNotFound)
	}

	logSlowQuery(ctx, op, duration)
	return tasks, nil
}

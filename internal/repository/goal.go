package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) (*model.Goal, error)
	GetByID(ctx context.Context, id int64) (*model.Goal, error)
	List(ctx context.Context) ([]*model.Goal, error)
	Update(ctx context.Context, goal *model.Goal) (*model.Goal, error)
	DeleteByID(ctx context.Context, id int64) error
	ReplaceTasks(ctx context.Context, goalID int64, taskIDs []int64) error
}

type goalRepository struct {
	db *pgxpool.Pool
}

func NewGoalRepository(db *pgxpool.Pool) GoalRepository {
	return &goalRepository{
		db: db,
	}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	start := time.Now()
	q := `INSERT INTO goal (title) VALUES ($1) RETURNING id, title`

	var created model.Goal
	err := r.db.QueryRow(ctx, q, goal.Title).Scan(&created.ID, &created.Title)

	duration := time.Since(start)

	if err != nil {
		logCriticalDBError(ctx, "create_goal", q, duration, err)
		return nil, HandlePgxError("create_goal", err, ErrGoalNotFound)
	}

	logSlowQuery(ctx, "create_goal", duration)
	return &created, nil
}

func (r *goalRepository) GetByID(ctx context.Context, id int64) (*model.Goal, error) {
	start := time.Now()
	q := `SELECT id, title FROM goal WHERE id = $1`

	var goal model.Goal
	err := r.db.QueryRow(ctx, q, id).Scan(&goal.ID, &goal.Title)

	duration := time.Since(start)

	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logCriticalDBError(ctx, "get_goal_by_id", q, duration, err)
		}
		return nil, HandlePgxError("get_goal_by_id", err, ErrGoalNotFound)
	}

	logSlowQuery(ctx, "get_goal_by_id", duration)
	return &goal, nil
}

func (r *goalRepository) List(ctx context.Context) ([]*model.Goal, error) {
	start := time.Now()
	q := `SELECT id, title FROM goal ORDER BY id ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		logCriticalDBError(ctx, "list_goals", q, time.Since(start), err)
		return nil, HandlePgxError("list_goals", err, ErrGoalNotFound)
	}
	defer rows.Close()

	goals := make([]*model.Goal, 0)
	for rows.Next() {
		var goal model.Goal
		if err := rows.Scan(&goal.ID, &goal.Title); err != nil {
			logCriticalDBError(ctx, "list_goals_scan", "", time.Since(start), err)
			return nil, HandlePgxError("list_goals_scan", err, ErrGoalNotFound)
		}
		goals = append(goals, &goal)
	}

	duration := time.Since(start)
	if err = rows.Err(); err != nil {
		logCriticalDBError(ctx, "list_goals_iteration", "", duration, err)
		return nil, HandlePgxError("list_goals_iteration", err, ErrGoalNotFound)
	}

	logSlowQuery(ctx, "list_goals", duration)
	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	start := time.Now()
	q := `UPDATE goal SET title = $2 WHERE id = $1 RETURNING id, title`

	var updated model.Goal
	err := r.db.QueryRow(ctx, q, goal.ID, goal.Title).Scan(&updated.ID, &updated.Title)

	duration := time.Since(start)

	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logCriticalDBError(ctx, "update_goal", q, duration, err)
		}
		return nil, HandlePgxError("update_goal", err, ErrGoalNotFound)
	}

	logSlowQuery(ctx, "update_goal", duration)
	return &updated, nil
}

// DeleteByID detaches the goal's tasks and removes the goal in one
// transaction. Tasks are never deleted.
func (r *goalRepository) DeleteByID(ctx context.Context, id int64) error {
	start := time.Now()

	err := r.inTx(ctx, "delete_goal", func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE task SET goal_id = NULL WHERE goal_id = $1`, id); err != nil {
			return HandlePgxError("delete_goal_detach", err, ErrGoalNotFound)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM goal WHERE id = $1`, id)
		if err != nil {
			return HandlePgxError("delete_goal", err, ErrGoalNotFound)
		}
		if tag.RowsAffected() == 0 {
			return WrapError("delete_goal", ErrGoalNotFound)
		}
		return nil
	})

	duration := time.Since(start)
	if err != nil {
		if !IsNotFoundError(err) {
			logCriticalDBError(ctx, "delete_goal", "", duration, err)
		}
		return err
	}

	logSlowQuery(ctx, "delete_goal", duration)
	return nil
}

// ReplaceTasks makes taskIDs the complete set of tasks assigned to the goal.
// If any id does not exist nothing is changed.
func (r *goalRepository) ReplaceTasks(ctx context.Context, goalID int64, taskIDs []int64) error {
	start := time.Now()
	ids := distinct(taskIDs)

	err := r.inTx(ctx, "replace_goal_tasks", func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM goal WHERE id = $1)`, goalID).Scan(&exists); err != nil {
			return HandlePgxError("replace_goal_tasks_lookup", err, ErrGoalNotFound)
		}
		if !exists {
			return WrapError("replace_goal_tasks_lookup", ErrGoalNotFound)
		}

		if _, err := tx.Exec(ctx, `UPDATE task SET goal_id = NULL WHERE goal_id = $1`, goalID); err != nil {
			return HandlePgxError("replace_goal_tasks_clear", err, ErrTaskNotFound)
		}

		if len(ids) == 0 {
			return nil
		}

		tag, err := tx.Exec(ctx, `UPDATE task SET goal_id = $1 WHERE id = ANY($2)`, goalID, ids)
		if err != nil {
			return HandlePgxError("replace_goal_tasks_assign", err, ErrTaskNotFound)
		}
		if tag.RowsAffected() != int64(len(ids)) {
			return WrapError("replace_goal_tasks_assign", ErrTaskNotFound)
		}
		return nil
	})

	duration := time.Since(start)
	if err != nil {
		if !IsNotFoundError(err) {
			logCriticalDBError(ctx, "replace_goal_tasks", "", duration, err)
		}
		return err
	}

	logSlowQuery(ctx, "replace_goal_tasks", duration)
	return nil
}

func (r *goalRepository) inTx(ctx context.Context, op string, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return HandlePgxError(op+"_begin", err, ErrGoalNotFound)
	}
	// после Commit откат ничего не делает
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return WrapError(op+"_commit", errors.Join(ErrTransactionFailed, err))
	}
	return nil
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

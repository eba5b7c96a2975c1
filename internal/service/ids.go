package service

import (
	"context"
	"strconv"

	"github.com/Raisondetr3/tasklist-service/internal/errors"
	"github.com/Raisondetr3/tasklist-service/internal/model"
	"github.com/Raisondetr3/tasklist-service/internal/repository"
)

const (
	EntityTask = "Task"
	EntityGoal = "Goal"
)

// ParseID разбирает идентификатор из пути: только десятичное положительное число.
func ParseID(entity, raw string) (int64, error) {
	if raw == "" || len(raw) > 19 {
		return 0, errors.InvalidIdentifier(entity, raw)
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, errors.InvalidIdentifier(entity, raw)
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.InvalidIdentifier(entity, raw)
	}
	return id, nil
}

// Resolver turns raw path identifiers into stored entities. It never writes.
type Resolver struct {
	tasks repository.TaskRepository
	goals repository.GoalRepository
}

func NewResolver(tasks repository.TaskRepository, goals repository.GoalRepository) *Resolver {
	return &Resolver{tasks: tasks, goals: goals}
}

func (r *Resolver) Task(ctx context.Context, raw string) (*model.Task, error) {
	id, err := ParseID(EntityTask, raw)
	if err != nil {
		return nil, err
	}

	task, err := r.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, errors.WrapRepositoryError(err, EntityTask, id)
	}
	return task, nil
}

func (r *Resolver) Goal(ctx context.Context, raw string) (*model.Goal, error) {
	id, err := ParseID(EntityGoal, raw)
	if err != nil {
		return nil, err
	}

	goal, err := r.goals.GetByID(ctx, id)
	if err != nil {
		return nil, errors.WrapRepositoryError(err, EntityGoal, id)
	}
	return goal, nil
}

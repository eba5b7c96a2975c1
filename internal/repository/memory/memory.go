// Package memory is an in-process implementation of the task and goal
// repositories. Handler and service tests run against it.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/model"
	"github.com/Raisondetr3/tasklist-service/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	nextTaskID int64
	nextGoalID int64

	tasks map[int64]model.Task
	goals map[int64]model.Goal

	// HealthErr is returned by HealthCheck when set.
	HealthErr error
}

func NewStore() *Store {
	return &Store{
		nextTaskID: 1,
		nextGoalID: 1,
		tasks:      make(map[int64]model.Task),
		goals:      make(map[int64]model.Goal),
	}
}

func (s *Store) Tasks() repository.TaskRepository { return (*taskRepo)(s) }

func (s *Store) Goals() repository.GoalRepository { return (*goalRepo)(s) }

func (s *Store) HealthCheck(context.Context) error { return s.HealthErr }

func cloneTask(t model.Task) *model.Task {
	out := t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	if t.GoalID != nil {
		gid := *t.GoalID
		out.GoalID = &gid
	}
	return &out
}

type taskRepo Store

func (r *taskRepo) Create(_ context.Context, task *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.GoalID != nil {
		if _, ok := r.goals[*task.GoalID]; !ok {
			return nil, repository.WrapError("create_task", repository.ErrGoalNotFound)
		}
	}

	stored := *cloneTask(*task)
	stored.ID = r.nextTaskID
	r.nextTaskID++
	r.tasks[stored.ID] = stored

	return cloneTask(stored), nil
}

func (r *taskRepo) GetByID(_ context.Context, id int64) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, repository.WrapError("get_task_by_id", repository.ErrTaskNotFound)
	}
	return cloneTask(task), nil
}

func (r *taskRepo) List(_ context.Context, filter model.ListTasksFilter) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		if filter.Title != nil && task.Title != *filter.Title {
			continue
		}
		out = append(out, cloneTask(task))
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case filter.Sort == model.SortAsc && a.Title != b.Title:
			return a.Title < b.Title
		case filter.Sort == model.SortDesc && a.Title != b.Title:
			return a.Title > b.Title
		default:
			return a.ID < b.ID
		}
	})

	return out, nil
}

func (r *taskRepo) Update(_ context.Context, task *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[task.ID]
	if !ok {
		return nil, repository.WrapError("update_task", repository.ErrTaskNotFound)
	}

	stored.Title = task.Title
	stored.Description = task.Description
	r.tasks[task.ID] = stored

	return cloneTask(stored), nil
}

func (r *taskRepo) SetCompletedAt(_ context.Context, id int64, completedAt *time.Time) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[id]
	if !ok {
		return nil, repository.WrapError("set_task_completed_at", repository.ErrTaskNotFound)
	}

	stored.CompletedAt = nil
	if completedAt != nil {
		at := *completedAt
		stored.CompletedAt = &at
	}
	r.tasks[id] = stored

	return cloneTask(stored), nil
}

func (r *taskRepo) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return repository.WrapError("delete_task", repository.ErrTaskNotFound)
	}
	delete(r.tasks, id)
	return nil
}

func (r *taskRepo) ListByGoal(_ context.Context, goalID int64) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Task, 0)
	for _, task := range r.tasks {
		if task.GoalID != nil && *task.GoalID == goalID {
			out = append(out, cloneTask(task))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

type goalRepo Store

func (r *goalRepo) Create(_ context.Context, goal *model.Goal) (*model.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := model.Goal{ID: r.nextGoalID, Title: goal.Title}
	r.nextGoalID++
	r.goals[stored.ID] = stored

	return &stored, nil
}

func (r *goalRepo) GetByID(_ context.Context, id int64) (*model.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goal, ok := r.goals[id]
	if !ok {
		return nil, repository.WrapError("get_goal_by_id", repository.ErrGoalNotFound)
	}
	return &goal, nil
}

func (r *goalRepo) List(context.Context) ([]*model.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Goal, 0, len(r.goals))
	for _, goal := range r.goals {
		g := goal
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *goalRepo) Update(_ context.Context, goal *model.Goal) (*model.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.goals[goal.ID]; !ok {
		return nil, repository.WrapError("update_goal", repository.ErrGoalNotFound)
	}

	stored := model.Goal{ID: goal.ID, Title: goal.Title}
	r.goals[goal.ID] = stored
	return &stored, nil
}

func (r *goalRepo) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.goals[id]; !ok {
		return repository.WrapError("delete_goal", repository.ErrGoalNotFound)
	}

	r.detachLocked(id)
	delete(r.goals, id)
	return nil
}

func (r *goalRepo) ReplaceTasks(_ context.Context, goalID int64, taskIDs []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.goals[goalID]; !ok {
		return repository.WrapError("replace_goal_tasks_lookup", repository.ErrGoalNotFound)
	}
	for _, id := range taskIDs {
		if _, ok := r.tasks[id]; !ok {
			return repository.WrapError("replace_goal_tasks_assign", repository.ErrTaskNotFound)
		}
	}

	r.detachLocked(goalID)
	for _, id := range taskIDs {
		task := r.tasks[id]
		gid := goalID
		task.GoalID = &gid
		r.tasks[id] = task
	}
	return nil
}

func (r *goalRepo) detachLocked(goalID int64) {
	for id, task := range r.tasks {
		if task.GoalID != nil && *task.GoalID == goalID {
			task.GoalID = nil
			r.tasks[id] = task
		}
	}
}

package service

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/errors"
	"github.com/Raisondetr3/tasklist-service/internal/model"
	"github.com/Raisondetr3/tasklist-service/internal/repository"
)

type GoalService interface {
	ListGoals(ctx context.Context) ([]*model.Goal, error)
	GetGoal(ctx context.Context, rawID string) (*model.Goal, error)
	CreateGoal(ctx context.Context, title string) (*model.Goal, error)
	UpdateGoal(ctx context.Context, rawID string, input GoalInput) (*model.Goal, error)
	DeleteGoal(ctx context.Context, rawID string) (*model.Goal, error)
	AssignTasks(ctx context.Context, rawID string, input TaskIDsInput) (*model.Goal, []int64, error)
	GetGoalTasks(ctx context.Context, rawID string) (*model.GoalWithTasks, error)
}

// GoalInput and TaskIDsInput are read after the goal is resolved, like TaskInput.
type GoalInput func() (title string, err error)

type TaskIDsInput func() (rawTaskIDs []string, err error)

type goalService struct {
	goalRepo repository.GoalRepository
	taskRepo repository.TaskRepository
	resolver *Resolver
}

func NewGoalService(goalRepo repository.GoalRepository, taskRepo repository.TaskRepository, resolver *Resolver) GoalService {
	return &goalService{
		goalRepo: goalRepo,
		taskRepo: taskRepo,
		resolver: resolver,
	}
}

func (s *goalService) ListGoals(ctx context.Context) ([]*model.Goal, error) {
	start := time.Now()

	goals, err := s.goalRepo.List(ctx)
	if err != nil {
		serviceErr := errors.WrapRepositoryError(err, EntityGoal, 0)
		logOperation(ctx, EntityGoal, "ListGoals", "", start, serviceErr)
		return nil, serviceErr
	}

	logOperation(ctx, EntityGoal, "ListGoals", "", start, nil)
	return goals, nil
}

func (s *goalService) GetGoal(ctx context.Context, rawID string) (*model.Goal, error) {
	start := time.Now()

	goal, err := s.resolver.Goal(ctx, rawID)
	logOperation(ctx, EntityGoal, "GetGoal", rawID, start, err)
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) CreateGoal(ctx context.Context, title string) (*model.Goal, error) {
	start := time.Now()

	saved, err := s.goalRepo.Create(ctx, model.NewGoal(title))
	if err != nil {
		serviceErr := errors.WrapRepositoryError(err, EntityGoal, 0)
		logOperation(ctx, EntityGoal, "CreateGoal", "", start, serviceErr)
		return nil, serviceErr
	}

	logOperation(ctx, EntityGoal, "CreateGoal", formatID(saved.ID), start, nil)
	return saved, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, rawID string, input GoalInput) (*model.Goal, error) {
	start := time.Now()
	operation := "UpdateGoal"

	goal, err := s.resolver.Goal(ctx, rawID)
	if err != nil {
		logOperation(ctx, EntityGoal, operation, rawID, start, err)
		return nil, err
	}

	title, err := input()
	if err != nil {
		logOperation(ctx, EntityGoal, operation, rawID, start, err)
		return nil, err
	}

	goal.Title = title

	updated, err := s.goalRepo.Update(ctx, goal)
	if err != nil {
		serviceErr := errors.WrapRepositoryError(err, EntityGoal, goal.ID)
		logOperation(ctx, EntityGoal, operation, rawID, start, serviceErr)
		return nil, serviceErr
	}

	logOperation(ctx, EntityGoal, operation, rawID, start, nil)
	return updated, nil
}

// DeleteGoal removes the goal; its tasks stay and lose their goal_id.
func (s *goalService) DeleteGoal(ctx context.Context, rawID string) (*model.Goal, error) {
	start := time.Now()
	operation := "DeleteGoal"

	goal, err := s.resolver.Goal(ctx, rawID)
	if err != nil {
		logOperation(ctx, EntityGoal, operation, rawID, start, err)
		return nil, err
	}

	if err := s.goalRepo.DeleteByID(ctx, goal.ID); err != nil {
		serviceErr := errors.WrapRepositoryError(err, EntityGoal, goal.ID)
		logOperation(ctx, EntityGoal, operation, rawID, start, serviceErr)
		return nil, serviceErr
	}

	logOperation(ctx, EntityGoal, operation, rawID, start, nil)
	return goal, nil
}

// AssignTasks replaces the goal's task set. Every id is resolved before
// anything is written, so a bad id leaves the previous assignment intact.
// The returned ids follow the request order.
func (s *goalService) AssignTasks(ctx context.Context, rawID string, input TaskIDsInput) (*model.Goal, []int64, error) {
	start := time.Now()
	operation := "AssignTasks"

	goal, err := s.resolver.Goal(ctx, rawID)
	if err != nil {
		logOperation(ctx, EntityGoal, operation, rawID, start, err)
		return nil, nil, err
	}

	rawTaskIDs, err := input()
	if err != nil {
		logOperation(ctx, EntityGoal, operation, rawID, start, err)
		return nil, nil, err
	}

	taskIDs := make([]int64, 0, len(rawTaskIDs))
	for _, raw := range rawTaskIDs {
		task, err := s.resolver.Task(ctx, raw)
		if err != nil {
			logOperation(ctx, EntityGoal, operation, rawID, start, err)
			return nil, nil, err
		}
		taskIDs = append(taskIDs, task.ID)
	}

	if err := s.goalRepo.ReplaceTasks(ctx, goal.ID, taskIDs); err != nil {
		var serviceErr *errors.ServiceError
		if stderrors.Is(err, repository.ErrTaskNotFound) {
			// задачу удалили между проверкой и транзакцией
			serviceErr = errors.NewServiceError(errors.KindNotFound, "task not found")
		} else {
			serviceErr = errors.WrapRepositoryError(err, EntityGoal, goal.ID)
		}
		logOperation(ctx, EntityGoal, operation, rawID, start, serviceErr)
		return nil, nil, serviceErr
	}

	logOperation(ctx, EntityGoal, operation, rawID, start, nil)
	return goal, taskIDs, nil
}

func (s *goalService) GetGoalTasks(ctx context.Context, rawID string) (*model.GoalWithTasks, error) {
	start := time.Now()
	operation := "GetGoalTasks"

	goal, err := s.resolver.Goal(ctx, rawID)
	if err != nil {
		logOperation(ctx, EntityGoal, operation, rawID, start, err)
		return nil, err
	}

	tasks, err := s.taskRepo.ListByGoal(ctx, goal.ID)
	if err != nil {
		serviceErr := errors.WrapRepositoryError(err, EntityGoal, goal.ID)
		logOperation(ctx, EntityGoal, operation, rawID, start, serviceErr)
		return nil, serviceErr
	}

	logOperation(ctx, EntityGoal, operation, rawID, start, nil)
	return &model.GoalWithTasks{Goal: goal, Tasks: tasks}, nil
}

package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/errors"
	"github.com/Raisondetr3/tasklist-service/internal/model"
	"github.com/Raisondetr3/tasklist-service/internal/repository"
)

const completionMessage = "Someone just completed the task %s"

type TaskService interface {
	ListTasks(ctx context.Context, title *string, sort string) ([]*model.Task, error)
	GetTask(ctx context.Context, rawID string) (*model.Task, error)
	CreateTask(ctx context.Context, title, description string) (*model.Task, error)
	UpdateTask(ctx context.Context, rawID string, input TaskInput) (*model.Task, error)
	DeleteTask(ctx context.Context, rawID string) (*model.Task, error)
	MarkComplete(ctx context.Context, rawID string) (*model.Task, error)
	MarkIncomplete(ctx context.Context, rawID string) (*model.Task, error)
}

// TaskInput yields the new title and description. It is called only once the
// task is resolved, so an unknown task is reported before a bad body.
type TaskInput func() (title, description string, err error)

// Dispatcher hands a message to the notification collaborator without
// blocking the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, message string)
}

type taskService struct {
	taskRepo   repository.TaskRepository
	resolver   *Resolver
	dispatcher Dispatcher
	now        func() time.Time
}

func NewTaskService(taskRepo repository.TaskRepository, resolver *Resolver, dispatcher Dispatcher) TaskService {
	return &taskService{
		taskRepo:   taskRepo,
		resolver:   resolver,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

func (s *taskService) ListTasks(ctx context.Context, title *string, sort string) ([]*model.Task, error) {
	start := time.Now()
	operation := "ListTasks"

	order, ok := model.ParseSortOrder(sort)
	if !ok {
		err := errors.InvalidParameter("sort", sort)
		logOperation(ctx, EntityTask, operation, "", start, err)
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx, model.ListTasksFilter{Title: title, Sort: order})
	if err != nil {
		serviceErr := errors.WrapRepositoryError(err, EntityTask, 0)
		logOperation(ctx, EntityTask, operation, "", start, serviceErr)
		return nil, serviceErr
	}

	logOperation(ctx, EntityTask, operation, "", start, nil)
	return tasks, nil
}

func (s *taskService) GetTask(ctx context.Context, rawID string) (*model.Task, error) {
	start := time.Now()

	task, err := s.resolver.Task(ctx, rawID)
	logOperation(ctx, EntityTask, "GetTask", rawID, start, err)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) CreateTask(ctx context.Context, title, description string) (*model.Task, error) {
	start := time.Now()
	operation := "CreateTask"

	saved, err := s.taskRepo.Create(ctx, model.NewTask(title, description))
	if err != nil {
		serviceErr := errors.WrapRepositoryError(err, EntityTask, 0)
		logOperation(ctx, EntityTask, operation, "", start, serviceErr)
		return nil, serviceErr
	}

	logOperation(ctx, EntityTask, operation, formatID(saved.ID), start, nil)
	return saved, nil
}

func (s *taskService) UpdateTask(ctx context.Context, rawID string, input TaskInput) (*model.Task, error) {
	start := time.Now()
	operation := "UpdateTask"

	task, err := s.resolver.Task(ctx, rawID)
	if err != nil {
		logOperation(ctx, EntityTask, operation, rawID, start, err)
		return nil, err
	}

	title, description, err := input()
	if err != nil {
		logOperation(ctx, EntityTask, operation, rawID, start, err)
		return nil, err
	}

	task.Update(title, description)

	updated, err := s.taskRepo.Update(ctx, task)
	if err != nil {
		serviceErr := errors.WrapRepositoryError(err, EntityTask, task.ID)
		logOperation(ctx, EntityTask, operation, rawID, start, serviceErr)
		return nil, serviceErr
	}

	logOperation(ctx, EntityTask, operation, rawID, start, nil)
	return updated, nil
}

// DeleteTask returns the removed task so callers can describe it.
func (s *taskService) DeleteTask(ctx context.Context, rawID string) (*model.Task, error) {
	start := time.Now()
	operation := "DeleteTask"

	task, err := s.resolver.Task(ctx, rawID)
	if err != nil {
		logOperation(ctx, EntityTask, operation, rawID, start, err)
		return nil, err
	}

	if err := s.taskRepo.DeleteByID(ctx, task.ID); err != nil {
		serviceErr := errors.WrapRepositoryError(err, EntityTask, task.ID)
		logOperation(ctx, EntityTask, operation, rawID, start, serviceErr)
		return nil, serviceErr
	}

	logOperation(ctx, EntityTask, operation, rawID, start, nil)
	return task, nil
}

// MarkComplete stamps the task with the current UTC time, even if it was
// already complete, and announces it once the change is stored.
func (s *taskService) MarkComplete(ctx context.Context, rawID string) (*model.Task, error) {
	start := time.Now()
	operation := "MarkComplete"

	task, err := s.resolver.Task(ctx, rawID)
	if err != nil {
		logOperation(ctx, EntityTask, operation, rawID, start, err)
		return nil, err
	}

	task.MarkComplete(s.now())

	updated, err := s.taskRepo.SetCompletedAt(ctx, task.ID, task.CompletedAt)
	if err != nil {
		serviceErr := errors.WrapRepositoryError(err, EntityTask, task.ID)
		logOperation(ctx, EntityTask, operation, rawID, start, serviceErr)
		return nil, serviceErr
	}

	s.dispatcher.Dispatch(ctx, fmt.Sprintf(completionMessage, updated.Title))

	logOperation(ctx, EntityTask, operation, rawID, start, nil)
	return updated, nil
}

func (s *taskService) MarkIncomplete(ctx context.Context, rawID string) (*model.Task, error) {
	start := time.Now()
	operation := "MarkIncomplete"

	task, err := s.resolver.Task(ctx, rawID)
	if err != nil {
		logOperation(ctx, EntityTask, operation, rawID, start, err)
		return nil, err
	}

	task.MarkIncomplete()

	updated, err := s.taskRepo.SetCompletedAt(ctx, task.ID, task.CompletedAt)
	if err != nil {
		serviceErr := errors.WrapRepositoryError(err, EntityTask, task.ID)
		logOperation(ctx, EntityTask, operation, rawID, start, serviceErr)
		return nil, serviceErr
	}

	logOperation(ctx, EntityTask, operation, rawID, start, nil)
	return updated, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

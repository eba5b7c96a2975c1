package model

import (
	"time"

	"github.com/Raisondetr3/tasklist-service/pkg/dto"
	"google.golang.org/protobuf/types/known/structpb"
)

func TaskToDTO(task *Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          task.ID,
		GoalID:      task.GoalID,
		Title:       task.Title,
		Description: task.Description,
		IsComplete:  task.IsComplete(),
	}
}

func TasksToDTO(tasks []*Task) []dto.TaskResponse {
	result := make([]dto.TaskResponse, len(tasks))
	for i, task := range tasks {
		result[i] = TaskToDTO(task)
	}
	return result
}

func GoalToDTO(goal *Goal) dto.GoalResponse {
	return dto.GoalResponse{
		ID:    goal.ID,
		Title: goal.Title,
	}
}

func GoalsToDTO(goals []*Goal) []dto.GoalResponse {
	result := make([]dto.GoalResponse, len(goals))
	for i, goal := range goals {
		result[i] = GoalToDTO(goal)
	}
	return result
}

func GoalWithTasksToDTO(g *GoalWithTasks) dto.GoalTasksResponse {
	return dto.GoalTasksResponse{
		ID:    g.Goal.ID,
		Title: g.Goal.Title,
		Tasks: TasksToDTO(g.Tasks),
	}
}

// TaskToStruct is the gRPC form of a task; it carries the same fields as
// the JSON representation.
func TaskToStruct(task *Task) *structpb.Struct {
	if task == nil {
		return nil
	}

	goalID := structpb.NewNullValue()
	if task.GoalID != nil {
		goalID = structpb.NewNumberValue(float64(*task.GoalID))
	}

	completedAt := structpb.NewNullValue()
	if task.CompletedAt != nil {
		completedAt = structpb.NewStringValue(task.CompletedAt.UTC().Format(time.RFC3339Nano))
	}

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"id":           structpb.NewNumberValue(float64(task.ID)),
			"goal_id":      goalID,
			"title":        structpb.NewStringValue(task.Title),
			"description":  structpb.NewStringValue(task.Description),
			"is_complete":  structpb.NewBoolValue(task.IsComplete()),
			"completed_at": completedAt,
		},
	}
}

func TasksToListValue(tasks []*Task) *structpb.ListValue {
	values := make([]*structpb.Value, len(tasks))
	for i, task := range tasks {
		values[i] = structpb.NewStructValue(TaskToStruct(task))
	}
	return &structpb.ListValue{Values: values}
}

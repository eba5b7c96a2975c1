package dto

import (
	"encoding/json"
	"fmt"
)

// TaskRequest тело POST /tasks и PUT /tasks/{id}
type TaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (r TaskRequest) Valid() bool {
	return r.Title != nil && r.Description != nil
}

type TaskResponse struct {
	ID          int64  `json:"id"`
	GoalID      *int64 `json:"goal_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsComplete  bool   `json:"is_complete"`
}

type TaskEnvelope struct {
	Task TaskResponse `json:"task"`
}

// AssignTasksRequest keeps elements raw so that each one can be reported
// as an invalid task id instead of failing the whole body.
type AssignTasksRequest struct {
	TaskIDs *[]json.RawMessage `json:"task_ids"`
}

func (r AssignTasksRequest) Valid() bool {
	return r.TaskIDs != nil
}

type AssignTasksResponse struct {
	ID      int64   `json:"id"`
	TaskIDs []int64 `json:"task_ids"`
}

type DetailsResponse struct {
	Details string `json:"details"`
}

func Deleted(entity string, id int64, title string) DetailsResponse {
	return DetailsResponse{
		Details: fmt.Sprintf("%s %d \"%s\" successfully deleted", entity, id, title),
	}
}

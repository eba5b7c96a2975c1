package model

import "time"

// Task доменная модель задачи
type Task struct {
	ID          int64
	Title       string
	Description string
	CompletedAt *time.Time
	GoalID      *int64
}

func NewTask(title, description string) *Task {
	return &Task{
		Title:       title,
		Description: description,
	}
}

func (t *Task) IsComplete() bool {
	return t.CompletedAt != nil
}

func (t *Task) Update(title, description string) {
	t.Title = title
	t.Description = description
}

func (t *Task) MarkComplete(now time.Time) {
	completedAt := now.UTC()
	t.CompletedAt = &completedAt
}

func (t *Task) MarkIncomplete() {
	t.CompletedAt = nil
}

type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case SortNone, SortAsc, SortDesc:
		return SortOrder(s), true
	default:
		return SortNone, false
	}
}

type ListTasksFilter struct {
	Title *string
	Sort  SortOrder
}

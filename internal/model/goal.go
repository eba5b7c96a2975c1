package model

type Goal struct {
	ID    int64
	Title string
}

func NewGoal(title string) *Goal {
	return &Goal{Title: title}
}

// GoalWithTasks цель вместе с задачами, у которых goal_id == ID
type GoalWithTasks struct {
	Goal  *Goal
	Tasks []*Task
}

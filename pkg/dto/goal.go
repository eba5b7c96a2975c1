package dto

type GoalRequest struct {
	Title *string `json:"title"`
}

func (r GoalRequest) Valid() bool {
	return r.Title != nil
}

type GoalResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type GoalEnvelope struct {
	Goal GoalResponse `json:"goal"`
}

type GoalTasksResponse struct {
	ID    int64          `json:"id"`
	Title string         `json:"title"`
	Tasks []TaskResponse `json:"tasks"`
}

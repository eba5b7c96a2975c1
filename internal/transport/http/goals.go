package http

import (
	"net/http"

	"github.com/Raisondetr3/tasklist-service/internal/model"
	"github.com/Raisondetr3/tasklist-service/internal/service"
	"github.com/Raisondetr3/tasklist-service/pkg/dto"
	"github.com/gorilla/mux"
)

func (h *HTTPHandlers) HandleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goals.ListGoals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, model.GoalsToDTO(goals))
}

func (h *HTTPHandlers) HandleGetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.goals.GetGoal(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GoalEnvelope{Goal: model.GoalToDTO(goal)})
}

func (h *HTTPHandlers) HandleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req dto.GoalRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goals.CreateGoal(r.Context(), *req.Title)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.GoalEnvelope{Goal: model.GoalToDTO(goal)})
}

func (h *HTTPHandlers) HandleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.goals.UpdateGoal(r.Context(), mux.Vars(r)["id"], func() (string, error) {
		var req dto.GoalRequest
		if err := decodeBody(w, r, &req); err != nil {
			return "", err
		}
		return *req.Title, nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GoalEnvelope{Goal: model.GoalToDTO(goal)})
}

func (h *HTTPHandlers) HandleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.goals.DeleteGoal(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.Deleted(service.EntityGoal, goal.ID, goal.Title))
}

// HandleAssignTasks POST /goals/{id}/tasks {"task_ids": [...]}
func (h *HTTPHandlers) HandleAssignTasks(w http.ResponseWriter, r *http.Request) {
	goal, taskIDs, err := h.goals.AssignTasks(r.Context(), mux.Vars(r)["id"], func() ([]string, error) {
		var req dto.AssignTasksRequest
		if err := decodeBody(w, r, &req); err != nil {
			return nil, err
		}

		rawIDs := make([]string, len(*req.TaskIDs))
		for i, raw := range *req.TaskIDs {
			rawIDs[i] = rawID(raw)
		}
		return rawIDs, nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AssignTasksResponse{ID: goal.ID, TaskIDs: taskIDs})
}

func (h *HTTPHandlers) HandleGetGoalTasks(w http.ResponseWriter, r *http.Request) {
	goal, err := h.goals.GetGoalTasks(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, model.GoalWithTasksToDTO(goal))
}

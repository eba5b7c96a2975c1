package http

import (
	"net/http"

	"github.com/Raisondetr3/tasklist-service/internal/model"
	"github.com/Raisondetr3/tasklist-service/internal/service"
	"github.com/Raisondetr3/tasklist-service/pkg/dto"
	"github.com/gorilla/mux"
)

// HandleListTasks GET /tasks?title=&sort=
func (h *HTTPHandlers) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var title *string
	if t := query.Get("title"); t != "" {
		title = &t
	}

	tasks, err := h.tasks.ListTasks(r.Context(), title, query.Get("sort"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, model.TasksToDTO(tasks))
}

func (h *HTTPHandlers) HandleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.GetTask(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TaskEnvelope{Task: model.TaskToDTO(task)})
}

func (h *HTTPHandlers) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.TaskRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), *req.Title, *req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.TaskEnvelope{Task: model.TaskToDTO(task)})
}

// HandleUpdateTask reads the body only after the task is resolved, so an
// unknown task is a 404 even when the body is also wrong.
func (h *HTTPHandlers) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.UpdateTask(r.Context(), mux.Vars(r)["id"], func() (string, string, error) {
		var req dto.TaskRequest
		if err := decodeBody(w, r, &req); err != nil {
			return "", "", err
		}
		return *req.Title, *req.Description, nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TaskEnvelope{Task: model.TaskToDTO(task)})
}

func (h *HTTPHandlers) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.DeleteTask(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.Deleted(service.EntityTask, task.ID, task.Title))
}

func (h *HTTPHandlers) HandleMarkComplete(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.MarkComplete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TaskEnvelope{Task: model.TaskToDTO(task)})
}

func (h *HTTPHandlers) HandleMarkIncomplete(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.MarkIncomplete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TaskEnvelope{Task: model.TaskToDTO(task)})
}

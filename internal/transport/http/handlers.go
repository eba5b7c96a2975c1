package http

import (
	"net/http"

	"github.com/Raisondetr3/tasklist-service/internal/config"
	"github.com/Raisondetr3/tasklist-service/internal/service"
	"github.com/gorilla/mux"
)

type HTTPHandlers struct {
	config *config.Config
	health service.HealthService
	tasks  service.TaskService
	goals  service.GoalService
}

func NewHTTPHandlers(
	cfg *config.Config,
	healthService service.HealthService,
	taskService service.TaskService,
	goalService service.GoalService,
) *HTTPHandlers {
	return &HTTPHandlers{
		config: cfg,
		health: healthService,
		tasks:  taskService,
		goals:  goalService,
	}
}

func (h *HTTPHandlers) SetupRoutes(router *mux.Router) {
	routes := []struct {
		method  string
		path    string
		handler http.HandlerFunc
	}{
		{http.MethodGet, "/health", h.HandleHealthCheck},

		{http.MethodGet, "/tasks", h.HandleListTasks},
		{http.MethodPost, "/tasks", h.HandleCreateTask},
		{http.MethodGet, "/tasks/{id}", h.HandleGetTask},
		{http.MethodPut, "/tasks/{id}", h.HandleUpdateTask},
		{http.MethodDelete, "/tasks/{id}", h.HandleDeleteTask},
		{http.MethodPatch, "/tasks/{id}/mark_complete", h.HandleMarkComplete},
		{http.MethodPatch, "/tasks/{id}/mark_incomplete", h.HandleMarkIncomplete},

		{http.MethodGet, "/goals", h.HandleListGoals},
		{http.MethodPost, "/goals", h.HandleCreateGoal},
		{http.MethodGet, "/goals/{id}", h.HandleGetGoal},
		{http.MethodPut, "/goals/{id}", h.HandleUpdateGoal},
		{http.MethodDelete, "/goals/{id}", h.HandleDeleteGoal},
		{http.MethodPost, "/goals/{id}/tasks", h.HandleAssignTasks},
		{http.MethodGet, "/goals/{id}/tasks", h.HandleGetGoalTasks},
	}

	for _, rt := range routes {
		router.HandleFunc(rt.path, rt.handler).Methods(rt.method)
	}
}

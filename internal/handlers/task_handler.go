package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Takoua852/Kanmind-backend/internal/service"
)

type TasksHandler struct {
	logger *log.Logger
	tasks  *service.TaskService
	users  *service.UserService
}

func NewTasksHandler(logger *log.Logger, tasks *service.TaskService, users *service.UserService) *TasksHandler {
	return &TasksHandler{logger: logger, tasks: tasks, users: users}
}

func (h *TasksHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), h.users)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	var req service.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	view, err := h.tasks.Create(r.Context(), actor, req)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

func (h *TasksHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), h.users)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	view, err := h.tasks.Get(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *TasksHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), h.users)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	var req service.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	view, err := h.tasks.Update(r.Context(), actor, mux.Vars(r)["id"], req)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *TasksHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), h.users)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	if err := h.tasks.Delete(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		respondError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignedToMe and Reviewing need authentication only; no board-level check.
func (h *TasksHandler) AssignedToMe(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), h.users)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	views, err := h.tasks.ListAssignedTo(r.Context(), actor)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *TasksHandler) Reviewing(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), h.users)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	views, err := h.tasks.ListReviewingFor(r.Context(), actor)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

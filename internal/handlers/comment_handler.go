package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Takoua852/Kanmind-backend/internal/service"
)

type CommentsHandler struct {
	logger   *log.Logger
	comments *service.CommentService
	users    *service.UserService
}

func NewCommentsHandler(logger *log.Logger, comments *service.CommentService, users *service.UserService) *CommentsHandler {
	return &CommentsHandler{logger: logger, comments: comments, users: users}
}

func (h *CommentsHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), h.users)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	views, err := h.comments.List(r.Context(), actor, mux.Vars(r)["taskId"])
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *CommentsHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), h.users)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	var req service.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	view, err := h.comments.Create(r.Context(), actor, mux.Vars(r)["taskId"], req.Content)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

func (h *CommentsHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), h.users)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	vars := mux.Vars(r)
	if err := h.comments.Delete(r.Context(), actor, vars["taskId"], vars["id"]); err != nil {
		respondError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

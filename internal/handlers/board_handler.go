package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Takoua852/Kanmind-backend/internal/service"
)

type BoardsHandler struct {
	logger *log.Logger
	boards *service.BoardService
	users  *service.UserService
}

func NewBoardsHandler(logger *log.Logger, boards *service.BoardService, users *service.UserService) *BoardsHandler {
	return &BoardsHandler{logger: logger, boards: boards, users: users}
}

func (h *BoardsHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), h.users)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	summaries, err := h.boards.ListVisibleTo(r.Context(), actor)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (h *BoardsHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), h.users)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	var req service.CreateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	summary, err := h.boards.Create(r.Context(), actor, req)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, summary)
}

func (h *BoardsHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), h.users)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	detail, err := h.boards.GetDetail(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *BoardsHandler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), h.users)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	var req service.UpdateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	summary, err := h.boards.Update(r.Context(), actor, mux.Vars(r)["id"], req)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *BoardsHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), h.users)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	if err := h.boards.Delete(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		respondError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Takoua852/Kanmind-backend/internal/service"
)

type AuthHandler struct {
	logger *log.Logger
	users  *service.UserService
}

func NewAuthHandler(logger *log.Logger, users *service.UserService) *AuthHandler {
	return &AuthHandler{logger: logger, users: users}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	resp, err := h.users.Register(r.Context(), req)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	resp, err := h.users.Login(r.Context(), req)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// EmailCheck answers GET /email-check/?email= with the matching user's
// id, email and fullname.
func (h *AuthHandler) EmailCheck(w http.ResponseWriter, r *http.Request) {
	if _, err := currentUser(r.Context(), h.users); err != nil {
		respondError(h.logger, w, err)
		return
	}

	info, err := h.users.CheckEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// Package handlers is the HTTP layer: decode the request, resolve the
// authenticated actor, call the service, encode the result. Errors from the
// taxonomy map onto their status codes; anything else becomes a 500 without
// leaking the internal message.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Takoua852/Kanmind-backend/internal/errs"
	"github.com/Takoua852/Kanmind-backend/internal/models"
	"github.com/Takoua852/Kanmind-backend/internal/security"
	"github.com/Takoua852/Kanmind-backend/internal/service"
)

type errorBody struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func respondError(logger *log.Logger, w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)
	body := errorBody{Error: err.Error()}
	if status == http.StatusInternalServerError {
		logger.Printf("Internal error: %v", err)
		body.Error = "internal server error"
	}
	var taxErr *errs.Error
	if errs.KindOf(err) == errs.KindValidation && errors.As(err, &taxErr) {
		body.Error = taxErr.Message
		body.Fields = taxErr.Fields
	}
	respondJSON(w, status, body)
}

// currentUser resolves the user id stored by the auth middleware into a full
// user record for the policy checks.
func currentUser(ctx context.Context, users *service.UserService) (*models.User, error) {
	return users.CurrentUser(ctx, security.UserIDFromContext(ctx))
}

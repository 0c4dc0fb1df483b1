package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"homefront/internal/domain/debt"
	"homefront/internal/domain/expense"
	"homefront/internal/domain/income"
	"homefront/internal/domain/notification"
	"homefront/internal/domain/user"
	"homefront/internal/shared/auth"
	"homefront/internal/shared/middleware"
	"homefront/internal/shared/validation"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request. Field is set for validation failures.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// decodeBody reads a JSON request body of at most 1MB into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Printf("Error decoding %s %s request: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// requireUser returns the authenticated user id, answering 401 when there is none.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return 0, false
	}
	return userID, true
}

// respondError maps domain errors to status codes. Anything unrecognised is
// logged and reported as a 500 without detail.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	if fe, ok := validation.AsFieldError(err); ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fe.Message, Field: fe.Field})
		return
	}

	switch {
	case errors.Is(err, income.ErrIncomeNotFound),
		errors.Is(err, expense.ErrExpenseNotFound),
		errors.Is(err, debt.ErrDebtNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, notification.ErrDeviceTokenNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, income.ErrForbidden),
		errors.Is(err, expense.ErrForbidden),
		errors.Is(err, debt.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, income.ErrInvalidUser),
		errors.Is(err, expense.ErrInvalidUser),
		errors.Is(err, debt.ErrInvalidUser),
		errors.Is(err, notification.ErrInvalidUser),
		errors.Is(err, user.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, user.ErrInvalidEmail):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "email"})
	case errors.Is(err, user.ErrNameRequired):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "name"})
	case errors.Is(err, auth.ErrWeakPassword):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "password"})
	case errors.Is(err, notification.ErrInvalidToken):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "token"})
	case errors.Is(err, notification.ErrInvalidDeviceType):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "deviceType"})
	default:
		log.Printf("Error handling %s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

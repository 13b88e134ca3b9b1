package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/blockedby/starred-jobs/internal/apperror"
	"github.com/blockedby/starred-jobs/internal/logger"
)

// Envelope is the success body: {"data": ...}.
type Envelope struct {
	Data any `json:"data"`
}

// ErrorBody is the failure body: {"error": "...", "code": "..."}.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RespondJSON writes data inside the success envelope.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Data: data})
}

// RespondErrorStatus writes a failure body with an explicit status.
func RespondErrorStatus(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorBody{Error: message, Code: code})
}

// RespondError maps err to its status and code. Errors without a kind become a
// generic 500 and are logged in full.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperror.As(err)
	if !ok {
		e = &apperror.Error{Kind: apperror.KindInternal, Err: err}
	}

	status := StatusFor(e.Kind)
	message := e.UserMessage()
	if e.Kind == apperror.KindInternal {
		message = apperror.KindInternal.DefaultMessage()
	}

	if status >= http.StatusInternalServerError {
		logger.Component("web").Error().Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("code", e.Kind.Code()).
			Msg("request failed")
	}

	RespondErrorStatus(w, status, message, e.Kind.Code())
}

// StatusFor returns the HTTP status for an error kind.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation, apperror.KindConstraint:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindDatabaseBusy:
		return http.StatusServiceUnavailable
	case apperror.KindNetwork, apperror.KindFetch, apperror.KindSearch:
		return http.StatusBadGateway
	case apperror.KindDatabase, apperror.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		_ = err // Client disconnected
	}
}

// Package respond writes JSON bodies and maps application errors onto HTTP
// status codes for every handler.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rqsn/donasi/internal/apperr"
	"github.com/rqsn/donasi/internal/auth"
	"github.com/rqsn/donasi/internal/document"
	"github.com/rqsn/donasi/internal/importer"
)

type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err with the status matching its kind. Store failures are
// reported as transient so that clients resubmit.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err)
	}

	JSON(w, status, body)
}

func classify(err error) (int, ErrorBody) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ErrorBody{Error: "validation failed", Fields: ve.Fields}
	}

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Error: "not found"}
	case errors.Is(err, apperr.ErrPermission):
		return http.StatusForbidden, ErrorBody{Error: "permission denied"}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorBody{Error: err.Error()}
	case errors.Is(err, document.ErrCertificateUnavailable):
		return http.StatusUnprocessableEntity, ErrorBody{Error: err.Error()}
	case errors.Is(err, importer.ErrUnknownLayout):
		return http.StatusBadRequest, ErrorBody{Error: err.Error()}
	case apperr.IsIntegration(err):
		return http.StatusServiceUnavailable, ErrorBody{Error: "storage is temporarily unavailable, please try again"}
	case apperr.IsGeneration(err):
		return http.StatusInternalServerError, ErrorBody{Error: "document could not be generated"}
	}

	return http.StatusInternalServerError, ErrorBody{Error: "internal error"}
}

// BadRequest reports a malformed request that never reached a service.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Error: msg})
}

// Artifact sends a generated document as a download.
func Artifact(w http.ResponseWriter, a *document.Artifact) {
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(a.Content)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(a.Content); err != nil {
		slog.Error("failed to write artifact", "filename", a.Filename, "error", err)
	}
}

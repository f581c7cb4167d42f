package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TWRT/ops-dashboard/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps service sentinels to status codes. Anything unknown is a
// 500 carrying "Error trying to <action>: <cause>".
func writeError(w http.ResponseWriter, action string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrLoginFailed):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrConfirmationRequired):
		status = http.StatusPreconditionRequired
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{
		"error": "Error trying to " + action + ": " + err.Error(),
	})
}

func writeFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

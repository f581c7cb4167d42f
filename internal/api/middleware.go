package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TWRT/ops-dashboard/internal/api/handlers"
	"github.com/TWRT/ops-dashboard/internal/models"
	"github.com/TWRT/ops-dashboard/internal/service"
)

// withSession resolves the X-Session-ID header, or the session cookie, into
// the request context. Unknown ids leave the request as a guest.
func withSession(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if id == "" {
			if c, err := r.Cookie(handlers.SessionCookie); err == nil {
				id = c.Value
			}
		}
		if session := auth.Session(id); session != nil {
			r = r.WithContext(service.WithSession(r.Context(), session))
		}
		next.ServeHTTP(w, r)
	})
}

func requirePage(policy models.RolePolicy, page models.Page, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := service.SessionFromContext(r.Context())
		if policy.CanView(session.RoleName(), page) {
			next.ServeHTTP(w, r)
			return
		}

		status, err := http.StatusForbidden, service.ErrForbidden
		if session == nil {
			status, err = http.StatusUnauthorized, service.ErrUnauthenticated
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "Error trying to open " + string(page) + ": " + err.Error(),
		})
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "took", time.Since(start))
	})
}

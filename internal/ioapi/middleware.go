package ioapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/diversityworkbench/divservice/pkg/ent"
	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

// credentialsKey is the context key the extracted credentials live
// under.
const credentialsKey contextKey = "credentials"

// Headers carrying the non-login parts of the credentials.
const (
	RepositoryHeader = "X-Repository"
	ProjectIDHeader  = "X-Project-ID"
	AgentNameHeader  = "X-Agent-Name"
	AgentURIHeader   = "X-Agent-URI"
)

// CredentialsMiddleware extracts the caller's credentials: login name
// and password from Basic auth, repository and agent identity from
// headers. Requests without Basic auth are rejected.
func CredentialsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		login, password, ok := r.BasicAuth()
		if !ok || login == "" {
			w.Header().Set("WWW-Authenticate", `Basic realm="divservice"`)
			http.Error(w, `{"error":"basic auth credentials are required"}`,
				http.StatusUnauthorized)
			return
		}

		projectID, _ := strconv.Atoi(r.Header.Get(ProjectIDHeader))
		creds := ent.UserCredentials{
			LoginName:  login,
			Password:   password,
			Repository: r.Header.Get(RepositoryHeader),
			ProjectID:  projectID,
			AgentName:  r.Header.Get(AgentNameHeader),
			AgentURI:   r.Header.Get(AgentURIHeader),
		}

		ctx := context.WithValue(r.Context(), credentialsKey, creds)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CredentialsFrom returns the credentials placed on the context by
// CredentialsMiddleware.
func CredentialsFrom(ctx context.Context) ent.UserCredentials {
	creds, _ := ctx.Value(credentialsKey).(ent.UserCredentials)
	return creds
}

// LoggingMiddleware logs one line per request. The login name is
// logged; the password never is.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		login, _, _ := r.BasicAuth()
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"durationMs", time.Since(start).Milliseconds(),
			"login", login,
			"requestID", middleware.GetReqID(r.Context()),
		)
	})
}

// RecoverMiddleware turns a handler panic into a 500 response.
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("panic recovered", "error", err, "path", r.URL.Path)
				http.Error(w, `{"error":"internal server error"}`,
					http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

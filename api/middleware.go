package api

import (
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foodgram-project/backend/database"
	"github.com/foodgram-project/backend/errs"
	"github.com/foodgram-project/backend/models"
	"github.com/foodgram-project/backend/services"
)

type authMiddleware struct {
	responder Responder
	auth      services.Auth
	users     *database.UserRepo
}

func newAuthMiddleware(auth services.Auth, users *database.UserRepo) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		auth:      auth,
		users:     users,
	}
}

// resolveViewer turns the Authorization header into a user. A missing header
// resolves to the anonymous viewer; a present but invalid token is an error.
func (m authMiddleware) resolveViewer(r *http.Request) (*models.User, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errs.NewUnauthorizedError("malformed authorization header")
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	email, err := m.auth.ParseToken(token)
	if err != nil {
		return nil, errs.NewUnauthorizedError("invalid or expired token")
	}

	user, err := m.users.FindByEmail(email)
	if err != nil {
		return nil, wrapDatabaseError("find", "user", err)
	}
	if user == nil {
		return nil, errs.NewUnauthorizedError("token subject no longer exists")
	}
	return user, nil
}

// authenticate rejects requests without a valid bearer token
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, err := m.resolveViewer(r)
		if err != nil {
			m.responder.WriteError(w, err)
			return
		}
		if viewer == nil {
			m.responder.WriteError(w, errs.NewUnauthorizedError("authentication required"))
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxWithViewer(r.Context(), viewer)))
	})
}

// maybeAuthenticate resolves the viewer when a token is supplied but lets
// anonymous requests through. Invalid tokens are still rejected.
func (m authMiddleware) maybeAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, err := m.resolveViewer(r)
		if err != nil {
			m.responder.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxWithViewer(r.Context(), viewer)))
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

// RequestIDMiddleware tags every request with a correlation id, exposed to
// clients through the X-Request-ID header.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctxWithRequestID(r.Context(), requestID)))
	})
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("requestID", ctxGetRequestID(r.Context())).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		// Log 500s that weren't panics (e.g. manually set by handlers)
		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("requestID", ctxGetRequestID(r.Context())).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("requestID", ctxGetRequestID(r.Context())).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}

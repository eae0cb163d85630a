package preview

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// requestLogger logs method, path, status and duration of every request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.DebugContext(r.Context(), "HTTP request",
				logfields.Method(r.Method),
				logfields.Path(r.URL.Path),
				slog.Int("status", status),
				logfields.Duration(time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}

// recoverer turns handler panics into a structured 500 response.
func recoverer(logger *slog.Logger, adapter *errors.HTTPErrorAdapter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.ErrorContext(r.Context(), "HTTP handler panic",
						slog.Any("panic", rec),
						logfields.Path(r.URL.Path),
						logfields.Method(r.Method))
					adapter.WriteErrorResponse(w, r, errors.InternalError("internal server error").
						WithContext("path", r.URL.Path).
						Build())
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

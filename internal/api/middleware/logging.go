package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// AccessLog пишет в лог одну строку на каждый запрос
func AccessLog(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			logger.Info("HTTP %s %s - status=%d, bytes=%d, duration_ms=%d, request_id=%s",
				r.Method, r.URL.Path, rec.Status(), rec.bytes, time.Since(start).Milliseconds(), GetRequestID(r.Context()))
		})
	}
}

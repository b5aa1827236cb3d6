package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// HTTPCollector приемник HTTP метрик (реализуется pkg/metrics.Metrics)
type HTTPCollector interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// MetricsMiddleware замеряет длительность и статус запросов
// В метку route попадает шаблон маршрута mux, а не конкретный путь
func MetricsMiddleware(collector HTTPCollector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			collector.ObserveHTTPRequest(r.Method, routeTemplate(r), rec.Status(), time.Since(start))
		})
	}
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unknown"
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return "unknown"
	}
	return tpl
}

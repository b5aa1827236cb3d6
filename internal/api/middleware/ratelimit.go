package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgRateLimitExceeded = "слишком много запросов, попробуйте позже"
	msgRateLimitDown     = "сервис временно недоступен"

	defaultRateLimit  = 60
	defaultRatePrefix = "rl"
)

// Limiter считает запросы клиента в текущем окне
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisRateLimiter ограничитель с фиксированным окном на Redis
// Счетчик общий для всех инстансов сервиса
type RedisRateLimiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
	prefix string
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// NewRedisRateLimiter создает ограничитель: не более limit запросов за window на ключ
func NewRedisRateLimiter(rdb redis.Scripter, limit int, window time.Duration, prefix string) *RedisRateLimiter {
	if limit <= 0 {
		limit = defaultRateLimit
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultRatePrefix
	}
	return &RedisRateLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

// Allow увеличивает счетчик ключа и проверяет лимит
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{l.prefix + ":" + key}, l.window.Milliseconds()).Result()
	if err != nil {
		return false, err
	}

	var count int64
	switch v := res.(type) {
	case int64:
		count = v
	case string:
		count, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unexpected redis script result type %T", res)
	}

	return count <= int64(l.limit), nil
}

// RateLimit ограничивает частоту запросов по IP клиента
// При failOpen ошибки Redis пропускают запрос дальше, иначе отвечаем 503
func RateLimit(limiter Limiter, resolver *ClientIPResolver, logger Logger, failOpen bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := resolver.ClientIP(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("RateLimit: limiter error for client=%s: %v", key, err)
				if failOpen {
					next.ServeHTTP(w, r)
					return
				}
				handlers.RespondError(w, http.StatusServiceUnavailable, msgRateLimitDown)
				return
			}

			if !allowed {
				logger.Warn("RateLimit: limit exceeded for client=%s, path=%s", key, r.URL.Path)
				handlers.RespondTooManyRequests(w, msgRateLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

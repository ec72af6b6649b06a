package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/deppfellow/bookmarks/internal/errs"
	"github.com/deppfellow/bookmarks/internal/metrics"
	"github.com/deppfellow/bookmarks/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Limiter names, used as metric labels.
const (
	limiterMemory = "memory"
	limiterRedis  = "redis"
)

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit enforces rate_limit per client ip. The counters live in Redis when
// it is configured, so the limit is shared between instances; otherwise a
// per-process token bucket is used. It is a pass-through when disabled.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.RateLimit
	if !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	var store middleware.RateLimiterStore
	var limiter string
	if r.server.Redis != nil {
		window := time.Duration(cfg.Window) * time.Second
		store = NewRedisRateLimiterStore(r.server.Redis, cfg.RequestsPerSecond, cfg.Burst, window, r.server.Logger)
		limiter = limiterRedis
	} else {
		store = middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.RequestsPerSecond),
			Burst:     cfg.Burst,
			ExpiresIn: 3 * time.Minute,
		})
		limiter = limiterMemory
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: &countingStore{store: store, limiter: limiter},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())

			GetLogger(c).Warn().
				Str("identifier", identifier).
				Str("limiter", limiter).
				Msg("rate limit exceeded")

			c.Response().Header().Set("Retry-After", strconv.Itoa(max(cfg.Window, 1)))
			return errs.NewTooManyRequestsError("Rate limit exceeded")
		},
	})
}

// RecordRateLimitHit records a RateLimitHit custom event in New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}

// countingStore counts allowed and rejected requests per limiter.
type countingStore struct {
	store   middleware.RateLimiterStore
	limiter string
}

func (s *countingStore) Allow(identifier string) (bool, error) {
	allowed, err := s.store.Allow(identifier)
	if allowed {
		metrics.RateLimitAllowed.WithLabelValues(s.limiter).Inc()
	} else {
		metrics.RateLimitRejected.WithLabelValues(s.limiter).Inc()
	}
	return allowed, err
}

// RedisRateLimiterStore is a fixed window limiter shared through Redis.
//
// Each identifier gets one counter per window; a request is allowed while
// the counter stays within rps*window+burst. Redis failures let the request
// through.
type RedisRateLimiterStore struct {
	client  *redis.Client
	allowed int64
	window  time.Duration
	timeout time.Duration
	logger  *zerolog.Logger
	now     func() time.Time
}

func NewRedisRateLimiterStore(client *redis.Client, rps float64, burst int, window time.Duration, logger *zerolog.Logger) *RedisRateLimiterStore {
	if window < time.Second {
		window = time.Second
	}

	return &RedisRateLimiterStore{
		client:  client,
		allowed: int64(rps*window.Seconds()) + int64(burst),
		window:  window,
		timeout: time.Second,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	windowSeconds := int64(s.window / time.Second)
	bucket := s.now().Unix() / windowSeconds
	key := fmt.Sprintf("rl:%s:%d", identifier, bucket)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, s.window+time.Second)
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("rate limit check failed, allowing request")
		return true, nil
	}

	return incr.Val() <= s.allowed, nil
}

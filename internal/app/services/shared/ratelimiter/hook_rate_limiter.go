package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// HookRateLimiter throttles the gateway webhook endpoint with a fixed
// 60-second window shared across instances through redis.
type HookRateLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
	limit int
}

func NewHookRateLimiter(redis contracts.RedisRepository, log *zap.Logger, cfg *config.InternalConfig) *HookRateLimiter {
	return &HookRateLimiter{
		redis: redis,
		log:   log,
		limit: cfg.App.WebhookRateLimitPerMinute,
	}
}

type EvaluateOutput struct {
	Allowed        bool
	RetryAfterSecs int
}

// Evaluate counts the current minute window and decides whether this
// delivery may proceed. Redis failures fail open: dropping a legitimate
// gateway delivery costs more than letting a burst through.
func (l *HookRateLimiter) Evaluate(ctx context.Context, now time.Time) (*EvaluateOutput, error) {
	if l.limit <= 0 {
		return &EvaluateOutput{Allowed: true}, nil
	}

	nowUTC := now.UTC()
	windowKey := fmt.Sprintf(constvars.RedisKeyWebhookRateFormat, nowUTC.Format("200601021504"))
	nextMinute := nowUTC.Truncate(time.Minute).Add(time.Minute)
	ttl := nextMinute.Sub(nowUTC) + time.Second

	count, err := l.redis.IncrementWithTTL(ctx, windowKey, ttl)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		l.log.Warn("HookRateLimiter.Evaluate redis unavailable, allowing delivery",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return &EvaluateOutput{Allowed: true}, nil
	}

	if count > int64(l.limit) {
		return &EvaluateOutput{
			Allowed:        false,
			RetryAfterSecs: int(nextMinute.Sub(nowUTC).Seconds()) + 1,
		}, nil
	}
	return &EvaluateOutput{Allowed: true}, nil
}

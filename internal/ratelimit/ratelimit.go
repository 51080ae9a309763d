// Package ratelimit paces rescans of a watched document.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// MinPollInterval bounds how often an unlimited watcher checks for changes.
const MinPollInterval = 50 * time.Millisecond

type Limiter struct {
	limiter *rate.Limiter
}

// New allows perSecond rescans with a burst of one. Zero or negative disables limiting.
func New(perSecond float64) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(toLimit(perSecond), 1),
	}
}

func toLimit(perSecond float64) rate.Limit {
	if perSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(perSecond)
}

// Wait blocks until the next rescan is allowed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Rate returns rescans per second, 0 when unlimited.
func (l *Limiter) Rate() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}

// PollInterval is the gap between change checks: one token's worth of time,
// never below MinPollInterval.
func (l *Limiter) PollInterval() time.Duration {
	perSecond := l.Rate()
	if perSecond == 0 {
		return MinPollInterval
	}
	return max(MinPollInterval, time.Duration(float64(time.Second)/perSecond))
}

// Folio: catalog adapters for manga reader applications.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package network

import (
	"context"
	"sync"
	"time"

	"Folio/pkg/errors"
)

// Clock is the time source used by RateLimiter
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock returns the wall clock
func SystemClock() Clock {
	return systemClock{}
}

// RateLimiter grants at most limit requests per period across every caller
// that shares it. A window opens with the first request granted in it; once
// the budget is spent, callers block until the window has elapsed.
// Callers are served one at a time.
type RateLimiter struct {
	mu          sync.Mutex
	limit       int
	period      time.Duration
	clock       Clock
	windowStart time.Time
	count       int
}

// NewRateLimiter creates a limiter on the wall clock
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return NewRateLimiterWithClock(limit, period, SystemClock())
}

// NewRateLimiterWithClock creates a limiter on the given clock.
// A non-positive limit or period disables limiting.
func NewRateLimiterWithClock(limit int, period time.Duration, clock Clock) *RateLimiter {
	if clock == nil {
		clock = SystemClock()
	}
	return &RateLimiter{
		limit:  limit,
		period: period,
		clock:  clock,
	}
}

// Budget returns the configured requests per period
func (r *RateLimiter) Budget() (int, time.Duration) {
	return r.limit, r.period
}

// Wait blocks until a request may be sent or ctx is done
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil || r.limit <= 0 || r.period <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		now := r.clock.Now()
		windowEnd := r.windowStart.Add(r.period)
		if r.count == 0 || !now.Before(windowEnd) {
			r.windowStart = now
			r.count = 0
		}

		if r.count < r.limit {
			r.count++
			return nil
		}

		waitTime := windowEnd.Sub(now)
		select {
		case <-r.clock.After(waitTime):
		case <-ctx.Done():
			return errors.Track(ctx.Err()).
				WithContext("wait_time", waitTime).
				AsNetwork().
				Error()
		}
	}
}

/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import (
	"sync"
	"time"
)

// RateLimit is the per-route rate-limit state. Before the first response
// for a route, the zero-value-adjacent initial state permits exactly one
// request (remaining=1, reset=now), per spec.
type RateLimit struct {
	mu        sync.Mutex
	limit     uint64
	remaining uint64
	reset     time.Time
}

// RateLimiter enforces per-Route server-advertised limits and handles 429s
// uniformly across concurrent callers.
//
// Grounded on original_source/src/http/rate_limiter.rs, translated from
// parking_lot's upgradable RwLock pattern to a plain sync.RWMutex with a
// double-checked-lock insert, which is the idiomatic Go equivalent of
// "upgrade a read lock to a write lock to insert a missing entry".
type RateLimiter struct {
	mu     sync.RWMutex
	routes map[Route]*RateLimit
}

// NewRateLimiter creates an empty RateLimiter. Routes are created lazily
// on first use and live for the process lifetime.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{routes: make(map[Route]*RateLimit)}
}

// entry returns the RateLimit for route, creating it if absent.
func (rl *RateLimiter) entry(route Route) *RateLimit {
	rl.mu.RLock()
	rt, ok := rl.routes[route]
	rl.mu.RUnlock()
	if ok {
		return rt
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rt, ok = rl.routes[route]; ok {
		return rt
	}
	rt = &RateLimit{limit: 1, remaining: 1, reset: time.Now()}
	rl.routes[route] = rt
	return rt
}

// requestFunc performs one HTTP round trip and returns the response status
// code, any rate-limit headers needed to update bucket state, the 429
// retry-after duration (valid only when retry is true), and an error for
// anything other than a completed HTTP exchange.
type requestFunc func() (result requestResult, err error)

type requestResult struct {
	status         int
	retry          bool
	retryAfter     time.Duration
	headerLimit    (*uint64)
	headerRemain   (*uint64)
	headerReset    (*time.Time)
}

// Do executes fn under the rate-limit protocol for route. route is nil for
// requests with no bucket (e.g. GET /channels/{id}); those still retry on
// 429 but never block on a local bucket.
func (rl *RateLimiter) Do(route *Route, fn requestFunc) (requestResult, error) {
	if route == nil {
		return rl.doUnbucketed(fn)
	}

	rt := rl.entry(*route)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	for {
		if rt.remaining == 0 {
			if wait := time.Until(rt.reset); wait > 0 {
				time.Sleep(wait)
			}
		}

		res, err := fn()
		if err != nil {
			return requestResult{}, err
		}

		if res.retry {
			time.Sleep(res.retryAfter)
			rl.applyHeaders(rt, res)
			continue
		}

		rl.applyHeaders(rt, res)
		return res, nil
	}
}

func (rl *RateLimiter) applyHeaders(rt *RateLimit, res requestResult) {
	if res.headerLimit != nil {
		rt.limit = *res.headerLimit
	}
	if res.headerRemain != nil {
		rt.remaining = *res.headerRemain
	}
	if res.headerReset != nil {
		rt.reset = *res.headerReset
	}
}

func (rl *RateLimiter) doUnbucketed(fn requestFunc) (requestResult, error) {
	for {
		res, err := fn()
		if err != nil {
			return requestResult{}, err
		}
		if res.retry {
			time.Sleep(res.retryAfter)
			continue
		}
		return res, nil
	}
}

// Package ratelimit throttles checkout traffic per client with a sliding
// window, backed by memory or Redis.
package ratelimit

import (
	"context"
	"time"
)

// Class groups endpoints that share a limit.
type Class string

const (
	ClassCheckout Class = "checkout"
	ClassConfirm  Class = "confirm"
	ClassRender   Class = "render"
)

// Limit is the number of requests allowed per window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// DefaultLimits apply when a class is not configured.
var DefaultLimits = map[Class]Limit{
	ClassCheckout: {Requests: 60, Window: time.Minute},
	ClassConfirm:  {Requests: 20, Window: time.Minute},
	ClassRender:   {Requests: 120, Window: time.Minute},
}

// Result is the outcome of one limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Store counts requests per key inside a sliding window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

func key(class Class, client string) string {
	return "rl:" + string(class) + ":" + client
}

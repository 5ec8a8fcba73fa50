package ratelimit

import "context"

// RateLimiter caps outbound call creation per destination bucket.
type RateLimiter interface {
	Allow(ctx context.Context, bucket string) (bool, error)
}

// internal/auth/attempts.go
// Failed sign-in counter. Backed by Redis when available; without Redis
// sign-in is never throttled.

package auth

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

type AttemptTracker interface {
	// Blocked reports whether identifier has used up its failures for the window
	Blocked(ctx context.Context, identifier string) bool
	RecordFailure(ctx context.Context, identifier string)
	Reset(ctx context.Context, identifier string)
}

type redisAttemptTracker struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewAttemptTracker returns a tracker that never blocks when client is nil
func NewAttemptTracker(client *redis.Client, max int, window time.Duration) AttemptTracker {
	if client == nil || max <= 0 {
		return noopAttemptTracker{}
	}
	return &redisAttemptTracker{client: client, max: max, window: window}
}

func attemptKey(identifier string) string {
	return fmt.Sprintf("failed:%s", identifier)
}

func (t *redisAttemptTracker) Blocked(ctx context.Context, identifier string) bool {
	count, err := t.client.Get(ctx, attemptKey(identifier)).Int()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️  Failed to read sign-in attempts: %v", err)
		}
		return false
	}
	return count >= t.max
}

func (t *redisAttemptTracker) RecordFailure(ctx context.Context, identifier string) {
	key := attemptKey(identifier)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("⚠️  Failed to record sign-in attempt: %v", err)
	}
}

func (t *redisAttemptTracker) Reset(ctx context.Context, identifier string) {
	t.client.Del(ctx, attemptKey(identifier))
}

type noopAttemptTracker struct{}

func (noopAttemptTracker) Blocked(context.Context, string) bool { return false }

func (noopAttemptTracker) RecordFailure(context.Context, string) {}

func (noopAttemptTracker) Reset(context.Context, string) {}

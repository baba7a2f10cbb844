package session

import (
	"context"
	"time"

	"fitness-platform/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RedisThrottle caps sign-in attempts per email using the atomic
// counter-with-TTL helpers in pkg/utils. A successful sign-in releases its
// slot; failed attempts hold theirs until the window expires, so a burst of
// bad passwords exhausts the cap.
type RedisThrottle struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRedisThrottle(rdb *redis.Client, limit int, window time.Duration) *RedisThrottle {
	return &RedisThrottle{rdb: rdb, limit: limit, window: window}
}

func (t *RedisThrottle) Acquire(ctx context.Context, email string) (bool, error) {
	return utils.AcquireAttemptSlot(ctx, t.rdb, t.key(email), t.limit, t.window)
}

func (t *RedisThrottle) Release(ctx context.Context, email string) error {
	return utils.ReleaseAttemptSlot(ctx, t.rdb, t.key(email))
}

func (t *RedisThrottle) key(email string) string {
	return "login_attempts:" + email
}

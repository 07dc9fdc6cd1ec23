// Package counter tracks successful sends per user per UTC calendar day.
// The count backs the advisory max_per_day cap: increments are at-least-once,
// so a concurrent dispatch may over-count slightly, which is acceptable.
package counter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/wb-go/wbf/retry"
)

// Keys live well past the day they count so a cap check near midnight still
// sees the old bucket, then expire on their own.
const keyTTL = 48 * time.Hour

type redisClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Counter is a per-(user, day) send counter backed by Redis.
type Counter struct {
	rdb redisClient
}

func New(rdb redisClient) *Counter {
	return &Counter{rdb: rdb}
}

// Day converts a point in time to its UTC yyyymmdd bucket.
func Day(t time.Time) int {
	u := t.UTC()
	return u.Year()*10000 + int(u.Month())*100 + u.Day()
}

func key(userID string, day int) string {
	return fmt.Sprintf("notify:count:%s:%d", userID, day)
}

// Incr records one successful send for the user on the given day. The TTL is
// refreshed on every increment; losing the race on first-incr TTL only delays
// expiry, never the count.
func (c *Counter) Incr(ctx context.Context, strategy retry.Strategy, userID string, day int) error {
	k := key(userID, day)

	err := retry.Do(func() error {
		if err := c.rdb.Incr(ctx, k).Err(); err != nil {
			return err
		}
		return c.rdb.Expire(ctx, k, keyTTL).Err()
	}, strategy)
	if err != nil {
		return fmt.Errorf("increment counter: %w", err)
	}

	return nil
}

// Count returns the number of sends recorded for the user on the given day,
// zero when nothing has been sent yet.
func (c *Counter) Count(ctx context.Context, strategy retry.Strategy, userID string, day int) (int, error) {
	var n int

	err := retry.Do(func() error {
		v, err := c.rdb.Get(ctx, key(userID, day)).Int()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				n = 0
				return nil
			}
			return err
		}
		n = v
		return nil
	}, strategy)
	if err != nil {
		return 0, fmt.Errorf("read counter: %w", err)
	}

	return n, nil
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// idempotencyTTL is the replay window for submission idempotency keys.
const idempotencyTTL = 24 * time.Hour

// DedupChecker provides submission idempotency checks backed by Redis.
// Key format: idem:<username>:<idempotency_key>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this principal has already submitted a
// transaction with this idempotency key inside the replay window.
func (d *DedupChecker) IsDuplicate(ctx context.Context, username, key string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(username, key)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that the key has been used (expires after idempotencyTTL).
func (d *DedupChecker) Mark(ctx context.Context, username, key string) error {
	return d.client.Set(ctx, d.key(username, key), "1", idempotencyTTL).Err()
}

func (d *DedupChecker) key(username, key string) string {
	return fmt.Sprintf("idem:%s:%s", username, key)
}

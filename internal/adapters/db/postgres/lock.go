package postgres

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Locker serializes cross-replica startup work, such as the one-time seed
// import, using PostgreSQL advisory locks.
type Locker struct {
	pool *pgxpool.Pool
}

func NewLocker(pool *pgxpool.Pool) *Locker { return &Locker{pool: pool} }

// hashKey converts a string key to a stable lock id
func hashKey(key string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int64(h.Sum32())
}

// WithLock runs fn while holding the advisory lock for key, blocking until
// the lock is available.
func (l *Locker) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	k := hashKey(key)
	if _, err := l.pool.Exec(ctx, "SELECT pg_advisory_lock($1)", k); err != nil {
		return fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	defer func() {
		_, _ = l.pool.Exec(ctx, "SELECT pg_advisory_unlock($1)", k)
	}()
	return fn(ctx)
}

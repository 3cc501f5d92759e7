package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hagwonlab/academy-backend/internal/logger"
)

// ReviewCounter tracks how many wrong-note reviews a student has done
// today. It backs the reviewed_today field of the review queue and is
// best-effort: when Redis is unconfigured the noop variant reports 0.
type ReviewCounter interface {
	IncrToday(ctx context.Context, studentID string, day time.Time) error
	CountToday(ctx context.Context, studentID string, day time.Time) (int, error)
	Close() error
}

type reviewCounter struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewReviewCounter(log *logger.Logger) (ReviewCounter, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &reviewCounter{
		log: log.With("service", "RedisReviewCounter"),
		rdb: rdb,
	}, nil
}

func (c *reviewCounter) key(studentID string, day time.Time) string {
	return fmt.Sprintf("review:count:%s:%s", studentID, day.Format("20060102"))
}

func (c *reviewCounter) IncrToday(ctx context.Context, studentID string, day time.Time) error {
	key := c.key(studentID, day)
	if err := c.rdb.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis incr: %w", err)
	}
	// Keys only need to survive until the next day rolls over.
	if err := c.rdb.Expire(ctx, key, 48*time.Hour).Err(); err != nil {
		c.log.Warn("Failed to set review counter expiry", "key", key, "error", err)
	}
	return nil
}

func (c *reviewCounter) CountToday(ctx context.Context, studentID string, day time.Time) (int, error) {
	n, err := c.rdb.Get(ctx, c.key(studentID, day)).Int()
	if err == goredis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get: %w", err)
	}
	return n, nil
}

func (c *reviewCounter) Close() error {
	return c.rdb.Close()
}

type noopReviewCounter struct{}

// NewNoopReviewCounter is used when REDIS_ADDR is unset.
func NewNoopReviewCounter() ReviewCounter { return noopReviewCounter{} }

func (noopReviewCounter) IncrToday(ctx context.Context, studentID string, day time.Time) error {
	return nil
}
func (noopReviewCounter) CountToday(ctx context.Context, studentID string, day time.Time) (int, error) {
	return 0, nil
}
func (noopReviewCounter) Close() error { return nil }

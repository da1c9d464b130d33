package counter

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const exportFormatsKey = "export:counters:formats"

// ExportCounter counts successful exports per format.
type ExportCounter interface {
	AddExport(ctx context.Context, format string) error
	Snapshot(ctx context.Context) (map[string]int64, error)
}

// RedisExportCounter keeps the counts in a Redis hash, one field per format.
type RedisExportCounter struct {
	rdb *redis.Client
}

// NewRedisExportCounter creates a counter backed by rdb.
func NewRedisExportCounter(rdb *redis.Client) *RedisExportCounter {
	return &RedisExportCounter{rdb: rdb}
}

// AddExport increments the counter for format.
func (c *RedisExportCounter) AddExport(ctx context.Context, format string) error {
	return c.rdb.HIncrBy(ctx, exportFormatsKey, format, 1).Err()
}

// Snapshot returns the current counts. Formats that were never exported are absent.
func (c *RedisExportCounter) Snapshot(ctx context.Context) (map[string]int64, error) {
	data, err := c.rdb.HGetAll(ctx, exportFormatsKey).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(data))
	for field, raw := range data {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		out[field] = n
	}
	return out, nil
}

// NopExportCounter is used when no cache is configured.
type NopExportCounter struct{}

func (NopExportCounter) AddExport(context.Context, string) error { return nil }

func (NopExportCounter) Snapshot(context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

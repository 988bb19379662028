package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const reportPrefix = "reports:"

func MonthlyIncomeKey(year int) string {
	return fmt.Sprintf("%smonthly-income:%d", reportPrefix, year)
}

func LeadStatsKey(from, to *time.Time) string {
	return fmt.Sprintf("%slead-stats:%s:%s", reportPrefix, keyTime(from), keyTime(to))
}

func keyTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

// ReportCache stores JSON encoded report results in Redis
type ReportCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewReportCache(client redis.UniversalClient, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

// Get decodes the cached value into dest and reports whether there was one
func (c *ReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}

	return true, nil
}

func (c *ReportCache) Set(ctx context.Context, key string, value any) error {
	if c.ttl == 0 {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Invalidate drops every cached report
func (c *ReportCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, reportPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan reports: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	return c.client.Del(ctx, keys...).Err()
}

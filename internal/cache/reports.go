package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hmshaban/jard-backend/internal/config"
	"github.com/hmshaban/jard-backend/internal/report"
)

const (
	reportKeyPrefix = "recon:report:"
	scanBatchSize   = 100
)

// ReportCache stores rendered report tables per run so repeated report
// reads do not re-render from the run result.
type ReportCache interface {
	GetTable(ctx context.Context, runID, name string) (*report.Table, bool, error)
	SetTable(ctx context.Context, runID string, table report.Table) error
	InvalidateRun(ctx context.Context, runID string) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

// NewReportCache returns a redis-backed cache, or a noop cache when
// caching is disabled.
func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func reportKey(runID, name string) string {
	return reportKeyPrefix + runID + ":" + name
}

func (c *redisReportCache) GetTable(ctx context.Context, runID, name string) (*report.Table, bool, error) {
	payload, err := c.client.Get(ctx, reportKey(runID, name)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var table report.Table
	if err := json.Unmarshal(payload, &table); err != nil {
		return nil, false, fmt.Errorf("decode report cache: %w", err)
	}

	return &table, true, nil
}

func (c *redisReportCache) SetTable(ctx context.Context, runID string, table report.Table) error {
	payload, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}

	if err := c.client.Set(ctx, reportKey(runID, table.Name), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisReportCache) InvalidateRun(ctx context.Context, runID string) error {
	return deleteKeysWithPrefix(ctx, c.client, reportKeyPrefix+runID+":", scanBatchSize)
}

func (c *noopReportCache) GetTable(ctx context.Context, runID, name string) (*report.Table, bool, error) {
	return nil, false, nil
}

func (c *noopReportCache) SetTable(ctx context.Context, runID string, table report.Table) error {
	return nil
}

func (c *noopReportCache) InvalidateRun(ctx context.Context, runID string) error {
	return nil
}

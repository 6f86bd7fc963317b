// Package cache implements the coach response cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
)

// Key layout: the fresh copy lives under a TTL key and expires on its
// own; the stale copy is the same payload under a persistent key and
// only gets overwritten by the next successful generation. GetStale
// reads the persistent key, which is what makes the rate-limit fallback
// work after the fresh key has expired.
const (
	analysisFreshKey = "coach:analysis:%s"
	analysisStaleKey = "coach:analysis:stale:%s"
	tipsFreshKey     = "coach:tips:%s"
	tipsStaleKey     = "coach:tips:stale:%s"
)

// analysisCache implements the adapter.AnalysisCache interface.
type analysisCache struct {
	client *redis.Client
}

// NewAnalysisCache creates a new Redis-backed analysis cache. A nil
// client yields a cache that never hits, so the coach still works when
// Redis is down, just without the stale fallback.
func NewAnalysisCache(client *redis.Client) adapter.AnalysisCache {
	if client == nil {
		return noopAnalysisCache{}
	}
	return &analysisCache{
		client: client,
	}
}

// noopAnalysisCache is used when no Redis connection is available.
type noopAnalysisCache struct{}

func (noopAnalysisCache) GetAnalysis(context.Context, string) (*entity.FinancialAnalysis, bool, error) {
	return nil, false, nil
}

func (noopAnalysisCache) GetStaleAnalysis(context.Context, string) (*entity.FinancialAnalysis, bool, error) {
	return nil, false, nil
}

func (noopAnalysisCache) SetAnalysis(context.Context, string, *entity.FinancialAnalysis, time.Duration) error {
	return nil
}

func (noopAnalysisCache) GetTips(context.Context, string) (*entity.FinancialTips, bool, error) {
	return nil, false, nil
}

func (noopAnalysisCache) GetStaleTips(context.Context, string) (*entity.FinancialTips, bool, error) {
	return nil, false, nil
}

func (noopAnalysisCache) SetTips(context.Context, string, *entity.FinancialTips, time.Duration) error {
	return nil
}

// GetAnalysis retrieves a cached analysis for a user.
func (c *analysisCache) GetAnalysis(ctx context.Context, userID string) (*entity.FinancialAnalysis, bool, error) {
	var analysis entity.FinancialAnalysis
	ok, err := c.get(ctx, fmt.Sprintf(analysisFreshKey, userID), &analysis)
	if !ok || err != nil {
		return nil, false, err
	}
	return &analysis, true, nil
}

// GetStaleAnalysis retrieves a cached analysis even when expired.
func (c *analysisCache) GetStaleAnalysis(ctx context.Context, userID string) (*entity.FinancialAnalysis, bool, error) {
	var analysis entity.FinancialAnalysis
	ok, err := c.get(ctx, fmt.Sprintf(analysisStaleKey, userID), &analysis)
	if !ok || err != nil {
		return nil, false, err
	}
	return &analysis, true, nil
}

// SetAnalysis stores an analysis with the given TTL.
func (c *analysisCache) SetAnalysis(ctx context.Context, userID string, analysis *entity.FinancialAnalysis, ttl time.Duration) error {
	return c.set(ctx, fmt.Sprintf(analysisFreshKey, userID), fmt.Sprintf(analysisStaleKey, userID), analysis, ttl)
}

// GetTips retrieves cached tips for a user.
func (c *analysisCache) GetTips(ctx context.Context, userID string) (*entity.FinancialTips, bool, error) {
	var tips entity.FinancialTips
	ok, err := c.get(ctx, fmt.Sprintf(tipsFreshKey, userID), &tips)
	if !ok || err != nil {
		return nil, false, err
	}
	return &tips, true, nil
}

// GetStaleTips retrieves cached tips even when expired.
func (c *analysisCache) GetStaleTips(ctx context.Context, userID string) (*entity.FinancialTips, bool, error) {
	var tips entity.FinancialTips
	ok, err := c.get(ctx, fmt.Sprintf(tipsStaleKey, userID), &tips)
	if !ok || err != nil {
		return nil, false, err
	}
	return &tips, true, nil
}

// SetTips stores tips with the given TTL.
func (c *analysisCache) SetTips(ctx context.Context, userID string, tips *entity.FinancialTips, ttl time.Duration) error {
	return c.set(ctx, fmt.Sprintf(tipsFreshKey, userID), fmt.Sprintf(tipsStaleKey, userID), tips, ttl)
}

// get loads and unmarshals one key. A miss is (false, nil).
func (c *analysisCache) get(ctx context.Context, key string, target interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return false, fmt.Errorf("failed to decode cached payload for %s: %w", key, err)
	}
	return true, nil
}

// set writes the payload under the TTL key and the persistent stale key.
func (c *analysisCache) set(ctx context.Context, freshKey, staleKey string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache payload: %w", err)
	}

	if err := c.client.Set(ctx, freshKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", freshKey, err)
	}
	if err := c.client.Set(ctx, staleKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", staleKey, err)
	}
	return nil
}

// internal/store/cache.go
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/database"
	apperrors "github.com/RachaputiVaishnavi/studio-application-flow/internal/common/errors"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/logger"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/metrics"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
)

const (
	cacheKeyApplications = "console:snapshot:applications"
	cacheKeyEvaluations  = "console:snapshot:evaluations"
)

// SnapshotCache keeps the last fetched collections in redis so a console
// restart can render immediately while a fresh fetch runs.
type SnapshotCache struct {
	rdb *database.RedisClient
	ttl time.Duration
	log logger.Logger
}

func NewSnapshotCache(rdb *database.RedisClient, ttl time.Duration, log logger.Logger) *SnapshotCache {
	return &SnapshotCache{
		rdb: rdb,
		ttl: ttl,
		log: log.WithFields(map[string]interface{}{"component": "snapshot-cache"}),
	}
}

// SaveApplications stores the application collection.
func (c *SnapshotCache) SaveApplications(ctx context.Context, apps []models.Application) error {
	return c.save(ctx, cacheKeyApplications, apps)
}

// Applications loads the cached application collection. The second return is
// false on a cache miss.
func (c *SnapshotCache) Applications(ctx context.Context) ([]models.Application, bool, error) {
	var apps []models.Application
	ok, err := c.load(ctx, cacheKeyApplications, &apps)
	return apps, ok, err
}

// SaveEvaluations stores the evaluation collection.
func (c *SnapshotCache) SaveEvaluations(ctx context.Context, evals []models.Evaluation) error {
	return c.save(ctx, cacheKeyEvaluations, evals)
}

// Evaluations loads the cached evaluation collection.
func (c *SnapshotCache) Evaluations(ctx context.Context) ([]models.Evaluation, bool, error) {
	var evals []models.Evaluation
	ok, err := c.load(ctx, cacheKeyEvaluations, &evals)
	return evals, ok, err
}

func (c *SnapshotCache) save(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return apperrors.NewCacheUnavailableError(err)
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl); err != nil {
		return apperrors.NewCacheUnavailableError(err)
	}
	return nil
}

func (c *SnapshotCache) load(ctx context.Context, key string, out interface{}) (bool, error) {
	payload, err := c.rdb.Get(ctx, key)
	if err == redis.Nil {
		metrics.SnapshotCacheHits.WithLabelValues("miss").Inc()
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewCacheUnavailableError(err)
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		// A stale or corrupt snapshot is treated as a miss.
		c.log.Warn("corrupt snapshot dropped", map[string]interface{}{"key": key})
		metrics.SnapshotCacheHits.WithLabelValues("miss").Inc()
		return false, nil
	}
	metrics.SnapshotCacheHits.WithLabelValues("hit").Inc()
	return true, nil
}

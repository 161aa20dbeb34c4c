package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/sitetrack/sitetrack/internal/config"
)

const (
	keyTxIngestProject  = "tx:ingest:project:%s"
	keyTxIngestEndpoint = "tx:ingest:endpoint:%s"
	keyTxIngestLock     = "tx:ingest:lock:%s:%s"
)

// TransactionIngestLimiter throttles the transaction registration
// endpoint per project and per instance, and serializes concurrent
// registrations against the same material across instances.
type TransactionIngestLimiter struct {
	enabled bool

	bucket *TokenBucket
	locker *Locker

	projectRate   float64
	projectBurst  int
	endpointRate  float64
	endpointBurst int
	lockTTL       time.Duration
}

func NewTransactionIngestLimiter(cfg config.Config) (*TransactionIngestLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.ProjectRate <= 0 || limitCfg.ProjectBurst <= 0 {
		return nil, errors.New("tx ingest project rate limit must be positive")
	}
	if limitCfg.EndpointRate <= 0 || limitCfg.EndpointBurst <= 0 {
		return nil, errors.New("tx ingest endpoint rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &TransactionIngestLimiter{
		enabled:       true,
		bucket:        NewTokenBucket(client),
		locker:        NewLocker(client),
		projectRate:   limitCfg.ProjectRate,
		projectBurst:  limitCfg.ProjectBurst,
		endpointRate:  limitCfg.EndpointRate,
		endpointBurst: limitCfg.EndpointBurst,
		lockTTL:       time.Duration(limitCfg.ConcurrencyTTLSeconds) * time.Second,
	}, nil
}

func (l *TransactionIngestLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *TransactionIngestLimiter) AllowProject(ctx context.Context, projectID string) (*RateLimitResult, error) {
	if !l.Enabled() {
		return &RateLimitResult{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyTxIngestProject, strings.TrimSpace(projectID)), l.projectRate, l.projectBurst)
}

func (l *TransactionIngestLimiter) AllowEndpoint(ctx context.Context, endpoint string) (*RateLimitResult, error) {
	if !l.Enabled() {
		return &RateLimitResult{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyTxIngestEndpoint, strings.TrimSpace(endpoint)), l.endpointRate, l.endpointBurst)
}

func (l *TransactionIngestLimiter) TryLockMaterial(ctx context.Context, projectID, materialID string) (string, bool, error) {
	if !l.Enabled() {
		return "", true, nil
	}
	key := fmt.Sprintf(keyTxIngestLock, strings.TrimSpace(projectID), strings.TrimSpace(materialID))
	return l.locker.TryLock(ctx, key, l.lockTTL)
}

func (l *TransactionIngestLimiter) ReleaseMaterial(ctx context.Context, projectID, materialID, token string) error {
	if !l.Enabled() {
		return nil
	}
	key := fmt.Sprintf(keyTxIngestLock, strings.TrimSpace(projectID), strings.TrimSpace(materialID))
	return l.locker.Release(ctx, key, token)
}

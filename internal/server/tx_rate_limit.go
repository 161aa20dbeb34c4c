package server

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitetrack/sitetrack/internal/observability/logger"
	obsmetrics "github.com/sitetrack/sitetrack/internal/observability/metrics"
	"go.uber.org/zap"
)

const (
	rateLimitReasonProjectRate         = "project-rate"
	rateLimitReasonEndpointRate        = "endpoint-rate"
	rateLimitReasonMaterialConcurrency = "material-concurrency"
)

// TransactionIngestRateLimit throttles transaction registration per
// project and per endpoint, and holds a short redis lock per material
// so concurrent registrations across instances queue instead of racing.
func (s *Server) TransactionIngestRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.txLimiter == nil || !s.txLimiter.Enabled() {
			c.Next()
			return
		}

		projectID := strings.TrimSpace(c.Param("projectId"))
		materialID := strings.TrimSpace(c.Param("id"))
		if projectID == "" || materialID == "" {
			AbortWithError(c, invalidRequestError())
			return
		}

		endpoint := normalizeRateLimitEndpoint(c)
		ctx := c.Request.Context()

		res, err := s.txLimiter.AllowProject(ctx, projectID)
		if err != nil {
			logger.FromContext(ctx).Warn("tx ingest project rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !res.Allowed {
			denyTransactionIngest(c, endpoint, projectID, rateLimitReasonProjectRate, s.obsMetrics)
			return
		}

		res, err = s.txLimiter.AllowEndpoint(ctx, endpoint)
		if err != nil {
			logger.FromContext(ctx).Warn("tx ingest endpoint rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !res.Allowed {
			denyTransactionIngest(c, endpoint, projectID, rateLimitReasonEndpointRate, s.obsMetrics)
			return
		}

		lockToken, acquired, err := s.txLimiter.TryLockMaterial(ctx, projectID, materialID)
		if err != nil {
			logger.FromContext(ctx).Warn("tx ingest concurrency lock failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !acquired {
			denyTransactionIngest(c, endpoint, projectID, rateLimitReasonMaterialConcurrency, s.obsMetrics)
			return
		}
		defer func() {
			if err := s.txLimiter.ReleaseMaterial(ctx, projectID, materialID, lockToken); err != nil {
				logger.FromContext(ctx).Warn("tx ingest concurrency unlock failed", zap.Error(err))
			}
		}()

		recordRateLimitAllowed(ctx, endpoint, projectID, s.obsMetrics)
		c.Next()
	}
}

func denyTransactionIngest(c *gin.Context, endpoint, projectID, reason string, metrics *obsmetrics.Metrics) {
	ctx := c.Request.Context()
	logger.FromContext(ctx).Warn("tx ingest rate limit exceeded",
		zap.String("reason", reason),
		zap.String("endpoint", endpoint),
	)
	recordRateLimitDenied(ctx, endpoint, projectID, reason, metrics)

	c.Header("Retry-After", "1")
	c.Header("X-Rate-Limited-Reason", reason)
	AbortWithError(c, ErrRateLimited)
}

func recordRateLimitAllowed(ctx context.Context, endpoint, projectID string, metrics *obsmetrics.Metrics) {
	if metrics == nil {
		return
	}
	metrics.RecordRateLimitAllowed(ctx, projectID, endpoint)
}

func recordRateLimitDenied(ctx context.Context, endpoint, projectID, reason string, metrics *obsmetrics.Metrics) {
	if metrics == nil {
		return
	}
	metrics.RecordRateLimitDenied(ctx, projectID, endpoint, reason)
}

func normalizeRateLimitEndpoint(c *gin.Context) string {
	if c == nil {
		return "unknown"
	}
	endpoint := strings.TrimSpace(c.FullPath())
	if endpoint == "" {
		endpoint = strings.TrimSpace(c.Request.URL.Path)
	}
	if endpoint == "" {
		endpoint = "unknown"
	}
	return endpoint
}

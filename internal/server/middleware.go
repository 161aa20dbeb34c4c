package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	obscontext "github.com/sitetrack/sitetrack/internal/observability/context"
	"github.com/sitetrack/sitetrack/internal/usercontext"
)

const userIDHeader = "X-User-ID"

// UserContext resolves the acting user from the X-User-ID header set by
// the authenticating proxy and stores it in the request context.
func (s *Server) UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(userIDHeader))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		userID, err := snowflake.ParseString(raw)
		if err != nil || userID == 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := usercontext.WithUserID(c.Request.Context(), userID.Int64())
		ctx = obscontext.WithActor(ctx, "user", userID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

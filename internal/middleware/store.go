package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/teamup/internal/database"
)

// StoreConnector yields the shared store, connecting on first use.
type StoreConnector interface {
	Get(ctx context.Context) (*database.Store, error)
}

// RequireStore ensures a store connection exists before the handler runs.
// The first request after startup in lazy mode pays for the connection.
func RequireStore(connector StoreConnector, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := connector.Get(c.Request.Context()); err != nil {
			logger.Errorw("store unavailable",
				"request_id", RequestID(c),
				"path", c.Request.URL.Path,
				"error", err,
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
			return
		}
		c.Next()
	}
}

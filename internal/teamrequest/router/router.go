// Package router provides team request module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/teamup/internal/teamrequest/handler"
	"github.com/festy23/teamup/internal/teamrequest/repository"
	"github.com/festy23/teamup/internal/teamrequest/service"
)

// RegisterRoutes registers team request routes under r.
func RegisterRoutes(r gin.IRouter, repo repository.Repository, logger *zap.SugaredLogger, opts ...service.Option) {
	svc := service.New(repo, logger, opts...)
	h := handler.New(svc, logger)

	r.GET("/requests", h.List)
	r.POST("/requests", h.Create)
	r.PUT("/requests/:id", h.Update)
	r.DELETE("/requests/:id", h.Delete)
}

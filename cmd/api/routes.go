package main

import (
	"context"
	"log/slog"

	"blog-api/internal/auth"
	"blog-api/internal/config"
	"blog-api/internal/httpapi"
	"blog-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// newRouter wires middleware and routes.
// Keep this file free of business logic. Handlers delegate to internal packages.
func newRouter(cfg config.Config, log *slog.Logger, guard *auth.Guard, ready func(context.Context) error) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(httpapi.CORS(cfg.CORS.AllowedOrigins))

	h := httpapi.Handlers{Ready: ready}
	r.NoRoute(h.NotFound)

	// public
	r.GET("/healthz", h.Health)
	r.GET("/readyz", h.Readiness)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/auth/session", guard.OptionalMiddleware(), h.Session)

		// Everything below requires a verified session cookie. Blog, comment
		// and like handlers mount here.
		protected := v1.Group("")
		protected.Use(guard.Middleware())
		{
			protected.GET("/me", h.Me)
		}
	}

	return r
}

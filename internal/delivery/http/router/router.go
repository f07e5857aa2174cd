// Package router wires handlers and route-level middleware onto echo.
package router

import (
	"strings"

	"gatekeeper/config"
	"gatekeeper/internal/delivery/http/middleware"
	"gatekeeper/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HealthPath is served outside the API prefix and skipped by access logging.
const HealthPath = "/health"

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	ActivityHandler     *handler.ActivityHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
	Config              *config.Config
}

type router struct {
	authHandler    *handler.AuthHandler
	activity       *handler.ActivityHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimit      *middleware.RateLimitMiddleware
	prefix         string
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		activity:       params.ActivityHandler,
		authMiddleware: params.AuthMiddleware,
		rateLimit:      params.RateLimitMiddleware,
		prefix:         normalizePrefix(params.Config.HTTP.Prefix),
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET(HealthPath, handler.HealthCheck)

	api := e.Group(r.prefix)

	authGroup := api.Group("/auth")
	authGroup.Use(r.rateLimit.Limit)
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/signin", r.authHandler.Signin)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
		authGroup.GET("/activity", r.activity.List, r.authMiddleware.Authenticate)
	}
}

// normalizePrefix turns "api", "/api/" and "/api" into "/api"; empty stays empty.
func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}

	return "/" + prefix
}

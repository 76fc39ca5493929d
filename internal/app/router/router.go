// Package router assembles the gin route table.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apphandler "account_backend/internal/app/handler"
	accounthandler "account_backend/internal/feature/account/transport/handler"
	authhandler "account_backend/internal/feature/auth/transport/handler"
	"account_backend/internal/platform/config"
	"account_backend/internal/platform/middleware"
)

// NewRouter builds the HTTP route table.
// Credential endpoints are public but rate limited; everything under /me
// requires a valid access token.
func NewRouter(cfg *config.Config, authH *authhandler.AuthHandler,
	accountH *accounthandler.AccountHandler) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{cfg.PublicSiteURL}
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// Liveness and metrics, no auth.
	r.GET("/healthz", apphandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Credential endpoints: public, rate limited per client IP.
	authLimiter := middleware.NewRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst)
	public := r.Group("/", authLimiter.Middleware())
	{
		public.POST("/signup", authH.Signup)
		public.POST("/login", authH.Login)
		public.POST("/refresh", authH.Refresh)
		public.POST("/logout", authH.Logout)
	}

	// Protected routes: the guard runs before any handler or repository code.
	me := r.Group("/me", middleware.AuthRequired(cfg.JWTSecret))
	{
		me.GET("", accountH.GetMe)
		me.PATCH("", accountH.UpdateMe)
		me.DELETE("", accountH.DeleteMe)
		me.GET("/sessions", accountH.ListSessions)
		me.DELETE("/sessions", accountH.RevokeSessions)
	}

	return r
}

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fssotc/website/config"
	"github.com/fssotc/website/internal/api/handler"
	"github.com/fssotc/website/internal/api/middleware"
	"github.com/fssotc/website/internal/model"
	"github.com/fssotc/website/pkg/jwt"
)

// Setup builds the Gin engine. blacklist and limiter may be nil when Redis
// is unavailable.
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	blacklist middleware.Blacklist,
	limiter middleware.Limiter,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(cfg.Server.RequestIDHeader))
	r.Use(middleware.Logger(logger, "/health"))
	r.Use(middleware.SecurityHeaders(cfg.Server.HTTPS()))
	r.Use(middleware.CORS(cfg.Server.CORS))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── blog (public) ──
	blog := r.Group("/blog")
	{
		blog.GET("", h.Post.List)
		blog.GET("/feed", h.Post.Feed)
		blog.GET("/:id", h.Post.Get)
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// public
		v1.GET("/sessions/current", h.Session.Current)
		v1.POST("/register", middleware.RateLimit(limiter, cfg.Site.RegisterRate, time.Minute), h.Member.Register)

		v1.GET("/events", h.Event.Upcoming)
		v1.GET("/events/all", h.Event.All)
		v1.GET("/events.ics", h.Event.Calendar)
		v1.GET("/events/:id", h.Event.Get)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(limiter, cfg.Site.RegisterRate, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// editors manage the blog only
			posts := authorized.Group("/posts", middleware.RoleAuth(model.AdminRoleAdmin, model.AdminRoleEditor))
			{
				posts.GET("", h.Post.ListAll)
				posts.GET("/:id", h.Post.GetAny)
				posts.POST("", h.Post.Create)
				posts.PUT("/:id", h.Post.Update)
				posts.DELETE("/:id", h.Post.Delete)
			}

			admin := authorized.Group("", middleware.RoleAuth(model.AdminRoleAdmin))
			{
				admin.GET("/sessions", h.Session.List)

				members := admin.Group("/members")
				{
					members.GET("", h.Member.List)
					members.POST("", h.Member.Create)
					members.GET("/:id", h.Member.Get)
					members.PUT("/:id", h.Member.Update)
					members.DELETE("/:id", h.Member.Delete)
				}

				inscriptions := admin.Group("/inscriptions")
				{
					inscriptions.GET("", h.Inscription.List)
					inscriptions.POST("", h.Inscription.Create)
					inscriptions.GET("/:id", h.Inscription.Get)
					inscriptions.PUT("/:id", h.Inscription.Update)
					inscriptions.POST("/:id/confirm", h.Inscription.Confirm)
					inscriptions.DELETE("/:id", h.Inscription.Delete)
				}

				events := admin.Group("/events")
				{
					events.POST("", h.Event.Create)
					events.PUT("/:id", h.Event.Update)
					events.DELETE("/:id", h.Event.Delete)
					events.POST("/:id/links", h.Event.AddLink)
					events.DELETE("/:id/links/:linkId", h.Event.DeleteLink)
				}

				admin.GET("/export/roster", h.Export.ExportRoster)
			}
		}
	}

	return r
}

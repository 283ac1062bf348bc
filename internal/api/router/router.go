package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/giorgiovilardo/easyorario/config"
	"github.com/giorgiovilardo/easyorario/internal/api/handler"
	"github.com/giorgiovilardo/easyorario/internal/api/middleware"
	"github.com/giorgiovilardo/easyorario/internal/model"
	"github.com/giorgiovilardo/easyorario/pkg/jwt"
	"github.com/giorgiovilardo/easyorario/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// Everything below is the responsible professor's surface.
			professor := authorized.Group("")
			professor.Use(middleware.RoleAuth(model.RoleResponsibleProfessor))
			{
				settings := professor.Group("/settings")
				{
					settings.GET("/llm", h.Settings.Get)
					settings.PUT("/llm", h.Settings.Update)
				}

				timetables := professor.Group("/timetables")
				{
					timetables.POST("", h.Timetable.Create)
					timetables.GET("", h.Timetable.List)
					timetables.GET("/:id", h.Timetable.Get)
					timetables.GET("/:id/conflicts", h.Constraint.Conflicts)

					constraints := timetables.Group("/:id/constraints")
					{
						constraints.GET("", h.Constraint.List)
						constraints.POST("", h.Constraint.Add)
						constraints.POST("/translate", h.Constraint.Translate)
						constraints.GET("/export", h.Export.ExportConstraints)
						constraints.POST("/:constraintID/verify", h.Constraint.Verify)
						constraints.POST("/:constraintID/reject", h.Constraint.Reject)
					}
				}
			}
		}
	}

	return r
}

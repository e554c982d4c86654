package app

import (
	"time"

	"github.com/amanbabu2004/web-application-students/internal/auth"
	"github.com/amanbabu2004/web-application-students/internal/cache"
	"github.com/amanbabu2004/web-application-students/internal/config"
	"github.com/amanbabu2004/web-application-students/internal/handlers"
	"github.com/amanbabu2004/web-application-students/internal/repo"
	"github.com/amanbabu2004/web-application-students/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler)
	r.GET("/version", versionHandler(cfg))

	credRepo := repo.NewPGCredentialRepo(db)
	sessionRepo := repo.NewPGSessionRepo(db)
	sessionSvc := service.NewSessionService(credRepo, sessionRepo, cfg.Auth.SessionTTL.Duration())
	authHandler := handlers.NewAuthHandler(sessionSvc)
	registerAuthRoutes(r, authHandler)

	userRepo := repo.NewPGUserRepo(db)
	var userCache *cache.UserCache
	if rdb != nil {
		userCache = cache.NewUserCache(rdb, cfg.Redis.DefaultTTL.Duration())
	}
	dirSvc := service.NewDirectoryService(userRepo, userCache)
	userHandler := handlers.NewUserHandler(dirSvc)

	protected := r.Group("/users", auth.RequireSession(sessionSvc))
	registerUserRoutes(protected, userHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Student Directory API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"health":  "/health",
		})
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func registerUserRoutes(g *gin.RouterGroup, h *handlers.UserHandler) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/search", h.Search)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func registerAuthRoutes(r *gin.Engine, h *handlers.AuthHandler) {
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/verify", h.Verify)
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/princeprakhar/partnerhub/internal/api/handlers"
	"github.com/princeprakhar/partnerhub/internal/api/middleware"
	"github.com/princeprakhar/partnerhub/internal/config"
	"github.com/princeprakhar/partnerhub/internal/database"
	"github.com/princeprakhar/partnerhub/internal/mailer"
	"github.com/princeprakhar/partnerhub/internal/storage"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

// Dependencies are the sandbox's backing services.
type Dependencies struct {
	Config  *config.SandboxConfig
	DB      *database.DB
	Storage *storage.S3Service
	Mail    *mailer.EmailService
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	cfg := deps.Config

	// Middleware
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.BaseURL))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimitRPS))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.DB, cfg.JWTSecret)
	passwordHandler := handlers.NewPasswordHandler(deps.DB, deps.Mail, cfg.BaseURL)
	storeHandler := handlers.NewStoreHandler(deps.DB)
	postHandler := handlers.NewPostHandler(deps.DB, deps.Storage)
	notificationHandler := handlers.NewNotificationHandler(deps.DB)
	storageHandler := handlers.NewStorageHandler(deps.Storage)

	requireAuth := middleware.AuthMiddleware(cfg.JWTSecret)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})

	// Signed object uploads
	objects := router.Group(storage.PathPrefix)
	{
		objects.PUT("/:bucket/*key", storageHandler.Put)
		objects.GET("/:bucket/*key", storageHandler.Get)
	}

	// API routes
	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/signup/", authHandler.Signup)
		auth.POST("/login/", authHandler.Login)
		auth.GET("/me/", requireAuth, authHandler.Me)
		auth.POST("/find-id/", authHandler.FindID)
		auth.POST("/reset-password-request/", passwordHandler.ResetRequest)
		auth.GET("/reset-password-validate/", passwordHandler.ResetValidate)
		auth.POST("/reset-password-confirm/", passwordHandler.ResetConfirm)
	}

	stores := api.Group("/stores", requireAuth)
	{
		stores.POST("/", storeHandler.Create)
		stores.GET("/me/", storeHandler.Mine)
	}

	api.GET("/posts/categories/", postHandler.Categories)
	posts := api.Group("/posts", requireAuth)
	{
		posts.GET("/", postHandler.List)
		posts.POST("/", postHandler.Create)
		posts.GET("/myposts/", postHandler.Mine)
		posts.POST("/image-upload/", postHandler.ImageUpload)
		posts.GET("/:id/", postHandler.Get)
	}

	notifications := api.Group("/notifications", requireAuth)
	{
		notifications.GET("/", notificationHandler.List)
		notifications.GET("/unread-count/", notificationHandler.UnreadCount)
		notifications.PATCH("/:id/read/", notificationHandler.MarkRead)
		notifications.POST("/partner-request/", notificationHandler.PartnerRequest)
	}

	logger.Info("Routes initialized successfully")
}

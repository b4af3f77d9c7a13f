package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/princeprakhar/partnerhub/internal/api/routes"
	"github.com/princeprakhar/partnerhub/internal/config"
	"github.com/princeprakhar/partnerhub/internal/database"
	"github.com/princeprakhar/partnerhub/internal/mailer"
	"github.com/princeprakhar/partnerhub/internal/storage"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

// The sandbox server is a stand-in for the PartnerHub API, for local
// development against the client and CLI. Without DATABASE_URL it keeps its
// data in an in-memory sqlite database.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	logger.Init(cfg.Environment)
	logger.SetLevel(cfg.LogLevel)
	sb := cfg.Sandbox

	s3Service, err := storage.NewS3Service(sb.S3Region, sb.S3Bucket, sb.AWSAccessKey, sb.AWSSecretKey, sb.PublicURL)
	if err != nil {
		logger.Fatal("Failed to initialize storage: ", err)
	}

	db, err := database.Init(sb.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize database: ", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, routes.Dependencies{
		Config:  &sb,
		DB:      db,
		Storage: s3Service,
		Mail:    mailer.NewEmailService(&sb),
	})

	logger.Info("Sandbox API starting on port " + sb.Port + ", public URL " + sb.PublicURL)
	if err := router.Run(":" + sb.Port); err != nil {
		logger.Fatal("Failed to start server: ", err)
	}
}

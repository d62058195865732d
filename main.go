package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/harukimz/taskboard-app/config"
	"github.com/harukimz/taskboard-app/middlewares"
	"github.com/harukimz/taskboard-app/models"
	"github.com/harukimz/taskboard-app/repository"
	"github.com/harukimz/taskboard-app/router"
	"github.com/harukimz/taskboard-app/services"
	"github.com/harukimz/taskboard-app/utils"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Periodic due-date sweep; the HTTP trigger endpoint covers external
	// schedulers, this covers standalone deployments.
	scanner := services.NewDueDateScanner(repository.NewStore(db))
	scanner.Start()
	defer scanner.Stop()

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

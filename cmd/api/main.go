package main

import (
	"log"
	"os"

	"research-program-api/config"
	"research-program-api/middleware"
	"research-program-api/models"
	"research-program-api/monitor"
	"research-program-api/routes"
	"research-program-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database
	config.InitDB()

	// The unique indexes on ready_for_publication.active_project_id and
	// in_publication.ready_publication_id are what keep the duplicate-entry
	// and double-promotion checks race-free; they must exist, not just the
	// application-level checks.
	if err := config.DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Student{},
		&models.ProjectStatus{},
		&models.Project{},
		&models.ProjectStudent{},
		&models.ReadyForPublication{},
		&models.ReadyForPublicationStudent{},
		&models.InPublication{},
		&models.InPublicationStudent{},
		&models.Conference{},
		&models.Journal{},
		&models.PublicationConferenceApplication{},
		&models.PublicationJournalApplication{},
	); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Prometheus scrape endpoint
	monitor.RegisterMetricsRoute(router)

	// Setup routes
	routes.SetupRoutes(router)

	// Schedule the submission-deadline reminder digest
	reminderSchedule := os.Getenv("REMINDER_CRON_SCHEDULE")
	if reminderSchedule == "" {
		reminderSchedule = "0 8 * * *"
	}
	reminder := services.NewDeadlineReminderService(config.DB)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(reminderSchedule, func() {
		summary, err := reminder.Run()
		if err != nil {
			log.Printf("Deadline reminder failed: %v", err)
			return
		}
		log.Printf("Deadline reminder: %d conference, %d journal deadline(s), mail sent: %v",
			summary.ConferenceCount, summary.JournalCount, summary.MailSent)
	}); err != nil {
		log.Printf("Warning: failed to schedule deadline reminder: %v", err)
	}
	scheduler.Start()

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package routes

import (
	"research-program-api/controllers"
	"research-program-api/middleware"
	"research-program-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Research Program API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Ready-for-publication workflow
			ready := protected.Group("/ready-publications")
			{
				ready.GET("", controllers.GetReadyPublications)
				ready.GET("/candidates", controllers.GetPromotionCandidates)
				ready.GET("/statistics", controllers.GetReadyPublicationStatistics)
				ready.GET("/:id", controllers.GetReadyPublication)
				ready.GET("/:id/authors", controllers.GetReadyPublicationAuthors)

				// Mentors and counselors manage drafts
				manage := middleware.RequireRole(models.RoleAdmin, models.RoleMentor, models.RoleCounselor)
				ready.POST("/from-project", manage, controllers.CreateReadyPublicationFromProject)
				ready.POST("", manage, controllers.CreateReadyPublication)
				ready.PUT("/:id", manage, controllers.UpdateReadyPublication)
				ready.PUT("/authors/:record_id", manage, controllers.UpdateReadyPublicationAuthor)
				ready.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteReadyPublication)

				// Only the research branch manager (or admin) promotes
				promote := middleware.RequireRole(models.RoleAdmin, models.RoleResearchBranchManager)
				ready.POST("/:id/promote", promote, controllers.PromoteReadyPublication)
			}

			// In-publication tracking
			publications := protected.Group("/publications")
			{
				publications.GET("", controllers.GetInPublications)
				publications.GET("/statistics", controllers.GetInPublicationStatistics)
				publications.GET("/:id", controllers.GetInPublication)
				publications.GET("/:id/authors", controllers.GetInPublicationAuthors)

				track := middleware.RequireRole(models.RoleAdmin, models.RoleResearchBranchManager)
				publications.PUT("/:id", track, controllers.UpdateInPublication)

				// Venue applications
				publications.POST("/:id/conference-applications", track, controllers.ApplyToConference)
				publications.GET("/:id/conference-applications", controllers.GetConferenceApplications)
				publications.POST("/:id/journal-applications", track, controllers.ApplyToJournal)
				publications.GET("/:id/journal-applications", controllers.GetJournalApplications)
			}

			// Venue application outcomes
			applications := protected.Group("/venue-applications")
			{
				outcome := middleware.RequireRole(models.RoleAdmin, models.RoleResearchBranchManager)
				applications.PUT("/conferences/:application_id", outcome, controllers.UpdateConferenceApplicationStatus)
				applications.PUT("/journals/:application_id", outcome, controllers.UpdateJournalApplicationStatus)
			}

			// Lookup catalogs (all authenticated users)
			protected.GET("/conferences", controllers.GetConferenceCatalog)
			protected.GET("/journals", controllers.GetJournalCatalog)
			protected.GET("/project-statuses", controllers.GetProjectStatusCatalog)
		}
	}
}

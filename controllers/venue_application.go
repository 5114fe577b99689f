// controllers/venue_application.go - Conference/journal submission tracking
package controllers

import (
	"net/http"

	"research-program-api/monitor"
	"research-program-api/services"

	"github.com/gin-gonic/gin"
)

// ApplyToConference records one conference submission for a publication
func ApplyToConference(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.ConferenceApplicationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := services.NewInPublicationService(nil).ApplyToConference(id, req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	monitor.VenueApplicationsTotal.WithLabelValues("conference").Inc()

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Conference application recorded",
		"application": application,
	})
}

// ApplyToJournal records one journal submission for a publication
func ApplyToJournal(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.JournalApplicationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := services.NewInPublicationService(nil).ApplyToJournal(id, req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	monitor.VenueApplicationsTotal.WithLabelValues("journal").Inc()

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Journal application recorded",
		"application": application,
	})
}

// GetConferenceApplications lists a publication's conference submissions
func GetConferenceApplications(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	applications, err := services.NewInPublicationService(nil).ListConferenceApplications(id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// GetJournalApplications lists a publication's journal submissions
func GetJournalApplications(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	applications, err := services.NewInPublicationService(nil).ListJournalApplications(id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// UpdateConferenceApplicationStatus records a conference submission outcome
func UpdateConferenceApplicationStatus(c *gin.Context) {
	applicationID, ok := parseID(c, "application_id")
	if !ok {
		return
	}

	var req services.VenueApplicationStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := services.NewInPublicationService(nil).
		UpdateConferenceApplicationStatus(applicationID, req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application status updated",
		"application": application,
	})
}

// UpdateJournalApplicationStatus records a journal submission outcome
func UpdateJournalApplicationStatus(c *gin.Context) {
	applicationID, ok := parseID(c, "application_id")
	if !ok {
		return
	}

	var req services.VenueApplicationStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := services.NewInPublicationService(nil).
		UpdateJournalApplicationStatus(applicationID, req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application status updated",
		"application": application,
	})
}

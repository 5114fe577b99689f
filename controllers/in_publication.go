// controllers/in_publication.go - In-publication workflow endpoints
package controllers

import (
	"fmt"
	"log"
	"net/http"

	"research-program-api/config"
	"research-program-api/models"
	"research-program-api/monitor"
	"research-program-api/services"

	"github.com/gin-gonic/gin"
)

// GetInPublications returns all in-publication entries with application counts
func GetInPublications(c *gin.Context) {
	filter := services.InPublicationFilter{
		Search: c.Query("search"),
	}

	rows, err := services.NewInPublicationService(nil).ListAll(filter)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"publications": rows,
		"total":        len(rows),
	})
}

// GetInPublication returns single in-publication entry by ID
func GetInPublication(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	entry, err := services.NewInPublicationService(nil).GetByID(id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"publication": entry,
	})
}

// GetInPublicationAuthors returns the entry's ordered author list
func GetInPublicationAuthors(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	authors, err := services.NewInPublicationService(nil).GetAuthors(id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authors": authors,
		"total":   len(authors),
	})
}

// PromoteReadyPublication moves an approved draft entry into the
// in-publication pipeline
func PromoteReadyPublication(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	publication, err := services.NewInPublicationService(nil).Promote(id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	monitor.PromotionsTotal.Inc()
	notifyPromotion(publication)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Entry moved to publication",
		"publication": publication,
	})
}

// notifyPromotion mails the project's lead mentor. Best effort: a mail
// failure is logged and never surfaces to the caller, the promotion already
// committed.
func notifyPromotion(publication *models.InPublication) {
	mentor, err := services.NewProjectRegistry(nil).GetLeadMentor(publication.ProjectID)
	if err != nil || mentor == nil || mentor.Email == "" {
		return
	}

	subject := "Publication moved to submission tracking"
	body := fmt.Sprintf("<p>Dear %s,</p><p>The paper <b>%s</b> has been approved and is now tracked for venue submissions (reference %s).</p>",
		mentor.FullName(), publication.PaperTitle, publication.ReferenceCode)
	if err := config.SendMail([]string{mentor.Email}, subject, body); err != nil {
		log.Printf("Warning: failed to send promotion mail: %v", err)
	}
}

// UpdateInPublication applies field updates to an in-publication entry
func UpdateInPublication(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.InPublicationUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := services.NewInPublicationService(nil).Update(id, req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Publication updated successfully",
		"publication": entry,
	})
}

// GetConferenceCatalog returns the active conferences for UI pickers
func GetConferenceCatalog(c *gin.Context) {
	conferences, err := services.NewInPublicationService(nil).ListVenueCatalog()
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conferences": conferences,
		"total":       len(conferences),
	})
}

// GetJournalCatalog returns the active journals for UI pickers
func GetJournalCatalog(c *gin.Context) {
	journals, err := services.NewInPublicationService(nil).ListJournalCatalog()
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"journals": journals,
		"total":    len(journals),
	})
}

// GetInPublicationStatistics returns pipeline counts for dashboards
func GetInPublicationStatistics(c *gin.Context) {
	stats, err := services.NewInPublicationService(nil).Statistics()
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statistics": stats,
	})
}

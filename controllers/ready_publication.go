// controllers/ready_publication.go - Ready-for-publication workflow endpoints
package controllers

import (
	"net/http"
	"strconv"

	"research-program-api/models"
	"research-program-api/services"

	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// GetReadyPublications returns all active draft entries, optionally filtered
func GetReadyPublications(c *gin.Context) {
	svc := services.NewReadyPublicationService(nil)

	filter := services.ReadyPublicationFilter{
		Search:        c.Query("search"),
		Status:        models.PublicationStatus(c.Query("status")),
		ProjectStatus: c.Query("project_status"),
	}

	entries, err := svc.ListActive(filter)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

// GetReadyPublication returns single draft entry by ID
func GetReadyPublication(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	entry, err := services.NewReadyPublicationService(nil).GetByID(id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry": entry,
	})
}

// GetReadyPublicationAuthors returns the entry's ordered author list
func GetReadyPublicationAuthors(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	authors, err := services.NewReadyPublicationService(nil).GetAuthors(id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authors": authors,
		"total":   len(authors),
	})
}

// CreateReadyPublicationFromProject derives a draft entry from a project
func CreateReadyPublicationFromProject(c *gin.Context) {
	type CreateFromProjectRequest struct {
		ProjectID uint `json:"project_id" binding:"required"`
	}

	var req CreateFromProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := services.NewReadyPublicationService(nil).CreateFromProject(req.ProjectID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Entry created successfully",
		"entry":   entry,
	})
}

// CreateReadyPublication inserts a draft entry with an explicit author list
func CreateReadyPublication(c *gin.Context) {
	var req services.ReadyPublicationCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := services.NewReadyPublicationService(nil).CreateManual(req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Entry created successfully",
		"entry":   entry,
	})
}

// UpdateReadyPublication applies field updates, enforcing the approval gate
func UpdateReadyPublication(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.ReadyPublicationUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := services.NewReadyPublicationService(nil).Update(id, req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Entry updated successfully",
		"entry":   entry,
	})
}

// UpdateReadyPublicationAuthor edits one author's affiliation and address
func UpdateReadyPublicationAuthor(c *gin.Context) {
	recordID, ok := parseID(c, "record_id")
	if !ok {
		return
	}

	type UpdateAuthorRequest struct {
		Affiliation string  `json:"affiliation" binding:"required"`
		Address     *string `json:"address"`
	}

	var req UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author, err := services.NewReadyPublicationService(nil).
		UpdateAuthorDetail(recordID, req.Affiliation, req.Address)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Author updated successfully",
		"author":  author,
	})
}

// DeleteReadyPublication hard-deletes a draft entry and its authors
func DeleteReadyPublication(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := services.NewReadyPublicationService(nil).Delete(id); err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Entry deleted successfully",
	})
}

// GetPromotionCandidates returns projects without an active draft entry
func GetPromotionCandidates(c *gin.Context) {
	projects, err := services.NewReadyPublicationService(nil).ListPromotionCandidates()
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"total":    len(projects),
	})
}

// GetProjectStatusCatalog returns the active project statuses for filter
// dropdowns on the workflow list pages
func GetProjectStatusCatalog(c *gin.Context) {
	statuses, err := services.GetProjectStatuses()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project statuses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statuses": statuses,
		"total":    len(statuses),
	})
}

// GetReadyPublicationStatistics returns entry counts for dashboards
func GetReadyPublicationStatistics(c *gin.Context) {
	stats, err := services.NewReadyPublicationService(nil).Statistics()
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statistics": stats,
	})
}

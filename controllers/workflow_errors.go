package controllers

import (
	"errors"
	"net/http"

	"research-program-api/services"

	"github.com/gin-gonic/gin"
)

// respondWorkflowError maps a service error to an HTTP response. Callers
// branch on the error kind, never on message text.
func respondWorkflowError(c *gin.Context, err error) {
	var validation *services.ValidationError
	var conflict *services.ConflictError
	var notFound *services.NotFoundError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Reason})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":                    conflict.Reason,
			"existing_id":              conflict.ExistingID,
			"existing_status":          conflict.Status,
			"existing_workflow_status": conflict.WorkflowStatus,
		})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

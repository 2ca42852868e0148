// controllers/report.go
package controllers

import (
	"net/http"

	"salonqueue-backend/models"
	"salonqueue-backend/repository"
	"salonqueue-backend/services"
	"salonqueue-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Products repository.ProductRepository
	Queue    *services.QueueService
}

// GetReportAnalytics returns the operational snapshot staff check during
// the day: queue load and products running low.
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionViewReports) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	lowStock, err := rc.Products.LowStock()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stock levels")
		return
	}

	entries, err := rc.Queue.AllEntries()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve queue")
		return
	}

	summary := map[string]int{
		models.StatusWaiting:    0,
		models.StatusInProgress: 0,
		models.StatusCompleted:  0,
		models.StatusCancelled:  0,
		models.StatusNoShow:     0,
	}
	totalWaitingMinutes := 0
	for i := range entries {
		summary[entries[i].Status]++
		if entries[i].Status == models.StatusWaiting {
			totalWaitingMinutes += entries[i].TotalServiceDuration()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"queue": gin.H{
			"byStatus":            summary,
			"totalWaitingMinutes": totalWaitingMinutes,
		},
		"lowStockProducts": lowStock,
	})
}

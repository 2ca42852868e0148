// controllers/notification.go
package controllers

import (
	"net/http"

	"salonqueue-backend/repository"
	"salonqueue-backend/utils"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Notifications repository.NotificationRepository
}

// GetMyNotifications lists the current user's notifications, newest first
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notifications, err := nc.Notifications.ForUser(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}

	c.JSON(http.StatusOK, notifications)
}

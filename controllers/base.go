// controllers/base.go
package controllers

import (
	"errors"
	"net/http"

	"salonqueue-backend/models"
	"salonqueue-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID pulls the authenticated user's id out of the context set
// by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}

func currentRole(c *gin.Context) string {
	raw, exists := c.Get("role")
	if !exists {
		return ""
	}
	role, _ := raw.(string)
	return role
}

// parseIDParam parses the :id path parameter.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// respondDomainError maps the domain error taxonomy onto HTTP statuses,
// preserving the precise guard that failed so clients can tell "already
// started by someone else" from "not found".
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrEmptyBooking):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrDuplicateLineItem),
		errors.Is(err, models.ErrAlreadyConfirmed),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrInsufficientStock):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrPermissionDenied):
		utils.RespondWithError(c, http.StatusForbidden, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal error")
	}
}

// controllers/queue.go
package controllers

import (
	"net/http"

	"salonqueue-backend/services"
	"salonqueue-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QueueController struct {
	Queue *services.QueueService
}

type StartInput struct {
	StaffID *uuid.UUID `json:"staffId"`
}

type UpdateEntryInput struct {
	Notes   *string    `json:"notes"`
	StaffID *uuid.UUID `json:"staffId"`
}

// GetQueue lists the full queue history (staff only)
func (qc *QueueController) GetQueue(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionViewQueue) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	entries, err := qc.Queue.AllEntries()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve queue")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetActiveQueue lists waiting entries in service order
func (qc *QueueController) GetActiveQueue(c *gin.Context) {
	entries, err := qc.Queue.ActiveQueue()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve queue")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetMyStatus returns the current customer's waiting entry
func (qc *QueueController) GetMyStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entry, err := qc.Queue.ActiveEntryForCustomer(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Not in queue")
		return
	}

	position, _ := qc.Queue.Position(entry.ID)
	wait, _ := qc.Queue.EstimatedWait(entry.ID)

	c.JSON(http.StatusOK, gin.H{
		"entry":             entry,
		"position":          position,
		"estimatedWaitTime": wait,
	})
}

// GetMyPosition returns the current customer's position and live wait estimate
func (qc *QueueController) GetMyPosition(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entry, err := qc.Queue.ActiveEntryForCustomer(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Not in queue")
		return
	}

	position, err := qc.Queue.Position(entry.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	wait, err := qc.Queue.EstimatedWait(entry.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	active, err := qc.Queue.ActiveQueue()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve queue")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"position":          position,
		"estimatedWaitTime": wait,
		"customersAhead":    position - 1,
		"totalCustomers":    len(active),
	})
}

// StartService begins serving a waiting entry (staff only)
func (qc *QueueController) StartService(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionStartService) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input StartInput
	// Body is optional; default the assignment to the acting staff member
	if err := c.ShouldBindJSON(&input); err != nil || input.StaffID == nil {
		input.StaffID = &userID
	}

	entry, err := qc.Queue.Start(entryID, input.StaffID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service started", "entry": entry})
}

// CompleteService finishes an in-progress entry (staff only)
func (qc *QueueController) CompleteService(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionCompleteService) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	entry, err := qc.Queue.Complete(entryID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service completed", "entry": entry})
}

// CancelEntry cancels a waiting or in-progress entry. Customers may
// cancel their own; staff may cancel any, which notifies the customer.
func (qc *QueueController) CancelEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	entry, err := qc.Queue.Entry(entryID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	isStaff := services.Can(currentRole(c), services.ActionUpdateEntry)
	if entry.CustomerID != userID && !isStaff {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	cancelledByStaff := entry.CustomerID != userID
	entry, err = qc.Queue.Cancel(entryID, cancelledByStaff)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Queue entry cancelled", "entry": entry})
}

// MarkNoShow flags a customer who never turned up (staff only)
func (qc *QueueController) MarkNoShow(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionMarkNoShow) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	entry, err := qc.Queue.MarkNoShow(entryID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked as no-show", "entry": entry})
}

// UpdateEntry edits notes or staff assignment (staff only)
func (qc *QueueController) UpdateEntry(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionUpdateEntry) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, err := qc.Queue.UpdateEntry(entryID, input.Notes, input.StaffID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

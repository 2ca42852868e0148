// controllers/booking.go
package controllers

import (
	"net/http"

	"salonqueue-backend/models"
	"salonqueue-backend/services"
	"salonqueue-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingController struct {
	Bookings *services.BookingService
	Queue    *services.QueueService
}

// BookingItemInput is one requested service on a booking
type BookingItemInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"min=1"`
	Notes     string    `json:"notes"`
}

// CreateBookingInput defines the expected JSON structure for creating a booking
type CreateBookingInput struct {
	Items           []BookingItemInput `json:"items" binding:"required,min=1"`
	SpecialRequests string             `json:"specialRequests"`
}

type AddItemInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"min=1"`
	Notes     string    `json:"notes"`
}

// CreateBooking creates an unconfirmed booking for the current customer
func (bc *BookingController) CreateBooking(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	items := make([]services.LineItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, services.LineItemInput{
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
	}

	booking, err := bc.Bookings.CreateBooking(customerID, input.SpecialRequests, items)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBookings lists bookings: staff see all, customers their own
func (bc *BookingController) GetBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var (
		bookings []models.Booking
		err      error
	)
	if services.Can(currentRole(c), services.ActionViewQueue) {
		bookings, err = bc.Bookings.AllBookings()
	} else {
		bookings, err = bc.Bookings.BookingsForCustomer(userID)
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking retrieves one booking; customers may only read their own
func (bc *BookingController) GetBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := bc.Bookings.Booking(bookingID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if booking.CustomerID != userID && !services.Can(currentRole(c), services.ActionViewQueue) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// AddItem appends a service to an unconfirmed booking
func (bc *BookingController) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := bc.Bookings.Booking(bookingID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if booking.CustomerID != userID {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	var input AddItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err = bc.Bookings.AddLineItem(bookingID, services.LineItemInput{
		ServiceID: input.ServiceID,
		Quantity:  input.Quantity,
		Notes:     input.Notes,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ConfirmBooking confirms the booking and admits it into the queue
func (bc *BookingController) ConfirmBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := bc.Bookings.Booking(bookingID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if booking.CustomerID != userID {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	entry, err := bc.Bookings.Confirm(bookingID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	position, err := bc.Queue.Position(entry.ID)
	if err != nil {
		position = 0
	}
	wait, err := bc.Queue.EstimatedWait(entry.ID)
	if err != nil {
		wait = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "Booking confirmed and added to queue",
		"queueEntry":        entry,
		"queuePosition":     position,
		"estimatedWaitTime": wait,
	})
}

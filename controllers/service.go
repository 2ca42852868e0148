// controllers/service.go
package controllers

import (
	"net/http"

	"salonqueue-backend/models"
	"salonqueue-backend/repository"
	"salonqueue-backend/services"
	"salonqueue-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ServiceController struct {
	Catalog repository.ServiceRepository
}

// ConsumedProductInput links a product the service uses up per unit
type ConsumedProductInput struct {
	ProductID    uuid.UUID `json:"productId" binding:"required"`
	QuantityUsed int       `json:"quantityUsed" binding:"min=1"`
}

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name             string                 `json:"name" binding:"required"`
	Description      string                 `json:"description"`
	Price            float64                `json:"price" binding:"required,min=0"`
	Duration         int                    `json:"duration" binding:"min=0"` // in minutes
	Category         string                 `json:"category"`
	LoyaltyPoints    int                    `json:"loyaltyPoints" binding:"min=0"`
	ConsumedProducts []ConsumedProductInput `json:"consumedProducts"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name             *string                 `json:"name"`
	Description      *string                 `json:"description"`
	Price            *float64                `json:"price"`
	Duration         *int                    `json:"duration"`
	Category         *string                 `json:"category"`
	LoyaltyPoints    *int                    `json:"loyaltyPoints"`
	IsActive         *bool                   `json:"isActive"`
	ConsumedProducts *[]ConsumedProductInput `json:"consumedProducts"`
}

// CreateService creates a new catalog service
func (sc *ServiceController) CreateService(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionManageCatalog) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		ID:            uuid.New(),
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Duration:      input.Duration,
		Category:      input.Category,
		LoyaltyPoints: input.LoyaltyPoints,
		IsActive:      true,
	}

	if err := sc.Catalog.Create(&service); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	if len(input.ConsumedProducts) > 0 {
		links := make([]models.ServiceProduct, 0, len(input.ConsumedProducts))
		for _, cp := range input.ConsumedProducts {
			links = append(links, models.ServiceProduct{
				ProductID:    cp.ProductID,
				QuantityUsed: cp.QuantityUsed,
			})
		}
		if err := sc.Catalog.SetConsumedProducts(service.ID, links); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to link consumed products")
			return
		}
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves the service catalog
func (sc *ServiceController) GetServices(c *gin.Context) {
	catalog, err := sc.Catalog.All()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, catalog)
}

// GetService retrieves a specific service by ID, with the products it consumes
func (sc *ServiceController) GetService(c *gin.Context) {
	serviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	service, err := sc.Catalog.ByID(serviceID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	links, err := sc.Catalog.ConsumedProducts(serviceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve consumed products")
		return
	}
	service.ConsumedProducts = links

	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service
func (sc *ServiceController) UpdateService(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionManageCatalog) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	serviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := sc.Catalog.ByID(serviceID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	// Update fields if provided
	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.LoyaltyPoints != nil {
		service.LoyaltyPoints = *input.LoyaltyPoints
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := sc.Catalog.Save(service); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	if input.ConsumedProducts != nil {
		links := make([]models.ServiceProduct, 0, len(*input.ConsumedProducts))
		for _, cp := range *input.ConsumedProducts {
			links = append(links, models.ServiceProduct{
				ProductID:    cp.ProductID,
				QuantityUsed: cp.QuantityUsed,
			})
		}
		if err := sc.Catalog.SetConsumedProducts(service.ID, links); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to link consumed products")
			return
		}
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService removes a service from the catalog
func (sc *ServiceController) DeleteService(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionManageCatalog) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	serviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := sc.Catalog.Delete(serviceID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

// controllers/product.go
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

type ProductController struct {
	Products repository.ProductRepository
}

type CreateProductInput struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	SKU           string  `json:"sku" binding:"required"`
	CostPrice     float64 `json:"costPrice" binding:"min=0"`
	StockQuantity int     `json:"stockQuantity" binding:"min=0"`
	MinStockLevel int     `json:"minStockLevel" binding:"min=0"`
	Unit          string  `json:"unit"`
}

type UpdateProductInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	CostPrice     *float64 `json:"costPrice"`
	MinStockLevel *int     `json:"minStockLevel"`
	Unit          *string  `json:"unit"`
	IsActive      *bool    `json:"isActive"`
}

type RestockInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionManageInventory) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	product := models.Product{
		ID:            uuid.New(),
		Name:          input.Name,
		Description:   input.Description,
		SKU:           input.SKU,
		CostPrice:     input.CostPrice,
		StockQuantity: input.StockQuantity,
		MinStockLevel: input.MinStockLevel,
		Unit:          input.Unit,
		IsActive:      true,
	}
	if product.Unit == "" {
		product.Unit = "piece"
	}

	if err := pc.Products.Create(&product); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (pc *ProductController) GetProducts(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionManageInventory) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	products, err := pc.Products.All()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionManageInventory) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := pc.Products.ByID(productID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionManageInventory) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	product, err := pc.Products.ByID(productID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.CostPrice != nil {
		product.CostPrice = *input.CostPrice
	}
	if input.MinStockLevel != nil {
		product.MinStockLevel = *input.MinStockLevel
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := pc.Products.Save(product); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionManageInventory) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := pc.Products.Delete(productID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// Restock adds received stock to a product
func (pc *ProductController) Restock(c *gin.Context) {
	if !services.Can(currentRole(c), services.ActionManageInventory) {
		utils.RespondWithError(c, http.StatusForbidden, "Permission denied")
		return
	}

	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input RestockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := pc.Products.AddStock(productID, input.Quantity); err != nil {
		respondDomainError(c, err)
		return
	}

	product, err := pc.Products.ByID(productID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// internal/handlers/inventory.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stoktrack/stok-backend/internal/i18n"
	"github.com/stoktrack/stok-backend/internal/services"
	"github.com/stoktrack/stok-backend/internal/utils"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
}

func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// GET /inventory?name=&location=
func (h *InventoryHandler) ListInventory(c *gin.Context) {
	tc, ok := getTenant(c)
	if !ok {
		return
	}

	nameFilter := c.Query("name")
	locationFilter := c.Query("location")

	listing, err := h.inventoryService.List(tc, nameFilter, locationFilter)
	if err != nil {
		handleServiceError(c, err, i18n.KeyInventoryNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"inventory": listing,
	})
}

// POST /inventory
func (h *InventoryHandler) UpsertInventory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	tc, ok := getTenant(c)
	if !ok {
		return
	}

	var req struct {
		ProductID   int64  `json:"product_id" validate:"required"`
		Location    string `json:"location"`
		Quantity    int64  `json:"quantity"`
		InventoryID *int64 `json:"inventory_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	entry, err := h.inventoryService.Upsert(tc, req.ProductID, req.Location, req.Quantity, req.InventoryID)
	if err != nil {
		handleServiceError(c, err, i18n.KeyInventoryNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInventoryUpdated),
		"entry":   entry,
	})
}

// DELETE /inventory/:id
func (h *InventoryHandler) DeleteInventory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	tc, ok := getTenant(c)
	if !ok {
		return
	}

	inventoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inventory ID", nil)
		return
	}

	// Delete is idempotent; a missing entry still reports success.
	if err := h.inventoryService.Delete(tc, inventoryID); err != nil {
		handleServiceError(c, err, i18n.KeyInventoryNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInventoryDeleted),
	})
}

// GET /inventory/locations
func (h *InventoryHandler) ListLocations(c *gin.Context) {
	tc, ok := getTenant(c)
	if !ok {
		return
	}

	locations, err := h.inventoryService.Locations(tc)
	if err != nil {
		handleServiceError(c, err, i18n.KeyInventoryNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"locations": locations,
	})
}

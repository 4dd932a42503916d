// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stoktrack/stok-backend/internal/i18n"
	"github.com/stoktrack/stok-backend/internal/models"
	"github.com/stoktrack/stok-backend/internal/services"
	"github.com/stoktrack/stok-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService    *services.CatalogService
	attributeService  *services.AttributeService
	visibilityService *services.VisibilityService
}

func NewCatalogHandler(catalogService *services.CatalogService, attributeService *services.AttributeService, visibilityService *services.VisibilityService) *CatalogHandler {
	return &CatalogHandler{
		catalogService:    catalogService,
		attributeService:  attributeService,
		visibilityService: visibilityService,
	}
}

// GET /catalog/columns
func (h *CatalogHandler) ListColumns(c *gin.Context) {
	tc, ok := getTenant(c)
	if !ok {
		return
	}

	columns, err := h.catalogService.ListColumns(tc)
	if err != nil {
		handleServiceError(c, err, i18n.KeyColumnNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"columns": columns,
	})
}

// POST /catalog/columns
func (h *CatalogHandler) DefineColumn(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	tc, ok := getTenant(c)
	if !ok {
		return
	}

	var req struct {
		Name    string `json:"name" validate:"required"`
		Type    string `json:"column_type"`
		Options string `json:"options"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	def, err := h.attributeService.Define(tc, req.Name, models.ColumnType(req.Type), req.Options)
	if err != nil {
		handleServiceError(c, err, i18n.KeyColumnNotFound)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyColumnCreated),
		"column":  def,
	})
}

// PUT /catalog/columns/rename
func (h *CatalogHandler) RenameColumn(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	tc, ok := getTenant(c)
	if !ok {
		return
	}

	var req struct {
		OldName string `json:"old_name" validate:"required"`
		NewName string `json:"new_name" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	def, err := h.attributeService.Rename(tc, req.OldName, req.NewName)
	if err != nil {
		handleServiceError(c, err, i18n.KeyColumnNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyColumnRenamed),
		"column":  def,
	})
}

// PUT /catalog/columns/:name/options
func (h *CatalogHandler) SetColumnOptions(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	tc, ok := getTenant(c)
	if !ok {
		return
	}

	var req struct {
		Options string `json:"options"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := h.attributeService.SetOptions(tc, c.Param("name"), req.Options); err != nil {
		handleServiceError(c, err, i18n.KeyColumnNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyColumnOptionsUpdated),
	})
}

// PUT /catalog/columns/:name/visibility
func (h *CatalogHandler) SetColumnVisibility(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	tc, ok := getTenant(c)
	if !ok {
		return
	}

	var req struct {
		IsVisible *bool `json:"is_visible" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.visibilityService.Set(tc, c.Param("name"), *req.IsVisible); err != nil {
		handleServiceError(c, err, i18n.KeyColumnNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyColumnVisibilitySet),
	})
}

// GET /catalog/visibility
func (h *CatalogHandler) GetVisibility(c *gin.Context) {
	tc, ok := getTenant(c)
	if !ok {
		return
	}

	visibility, err := h.visibilityService.GetAll(tc)
	if err != nil {
		handleServiceError(c, err, i18n.KeyColumnNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"visibility": visibility,
	})
}

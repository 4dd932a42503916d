// internal/handlers/export.go
package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stoktrack/stok-backend/internal/i18n"
	"github.com/stoktrack/stok-backend/internal/services"
	"github.com/stoktrack/stok-backend/internal/utils"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// GET /export/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	tc, ok := getTenant(c)
	if !ok {
		return
	}

	wb, err := h.exportService.Workbook(tc)
	if err != nil {
		logrus.WithError(err).WithField("user_id", tc.UserID).Error("Export failed")
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyExportFailed))
		return
	}
	defer wb.Close()

	filename := fmt.Sprintf("stock_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := wb.Write(c.Writer); err != nil {
		// Headers are already out; all we can do is log.
		logrus.WithError(err).WithField("user_id", tc.UserID).Error("Export stream aborted")
	}
}

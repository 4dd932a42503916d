// internal/handlers/common.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stoktrack/stok-backend/internal/services"
	"github.com/stoktrack/stok-backend/internal/tenant"
	"github.com/stoktrack/stok-backend/internal/utils"
)

// getTenant pulls the per-request store context set by the TenantStore
// middleware. A missing context means the route was wired without it.
func getTenant(c *gin.Context) (*tenant.Context, bool) {
	v, exists := c.Get("tenant")
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return nil, false
	}

	tc, ok := v.(*tenant.Context)
	if !ok || tc.Validate() != nil {
		utils.UnauthorizedResponse(c, "")
		return nil, false
	}
	return tc, true
}

// handleServiceError maps the service error taxonomy onto HTTP responses.
// notFoundKey names the i18n message used for not-found errors so each
// handler can report the right resource.
func handleServiceError(c *gin.Context, err error, notFoundKey string) {
	switch {
	case services.IsValidation(err):
		utils.BadRequestResponse(c, err.Error(), nil)
	case services.IsNotFound(err):
		utils.NotFoundResponse(c, notFoundKey)
	case services.IsConflict(err):
		utils.ConflictResponse(c, err.Error())
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Unhandled service error")
		utils.InternalErrorResponse(c, "")
	}
}

// internal/tenant/context.go
package tenant

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNoTenant = errors.New("no tenant context supplied")

// Context carries the resolved tenant for one request: who it is, where its
// stock store lives, and the store connection opened for this request. It is
// passed explicitly into every catalog, ledger, and registry operation.
type Context struct {
	UserID    uuid.UUID
	Username  string
	StorePath string
	DB        *gorm.DB
}

// Validate fails fast when a handler reached a core operation without an
// authenticated tenant and an open store.
func (c *Context) Validate() error {
	if c == nil || c.UserID == uuid.Nil || c.DB == nil {
		return ErrNoTenant
	}
	return nil
}

// internal/services/service_test.go
package services

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/stoktrack/stok-backend/internal/tenant"
)

// newTestTenant provisions a throwaway stock store and returns a tenant
// context bound to it. The store file lives in the test's temp dir and the
// connection is released when the test finishes.
func newTestTenant(t *testing.T) *tenant.Context {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stock_test.db")
	p := tenant.NewProvisioner(5000)
	if err := p.Provision(path); err != nil {
		t.Fatalf("provision test store: %v", err)
	}

	db, err := p.Open(path)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { tenant.Close(db) })

	return &tenant.Context{
		UserID:    uuid.New(),
		Username:  "tester",
		StorePath: path,
		DB:        db,
	}
}

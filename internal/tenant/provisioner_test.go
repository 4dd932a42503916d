// internal/tenant/provisioner_test.go
package tenant

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestProvisionCreatesAllTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock_test.db")
	p := NewProvisioner(5000)

	require.NoError(t, p.Provision(path))

	db, err := p.Open(path)
	require.NoError(t, err)
	defer Close(db)

	for _, table := range []string{"products", "inventory", "stock_columns", "column_visibility"} {
		cols, err := TableColumns(db, table)
		require.NoError(t, err)
		assert.NotEmpty(t, cols, "table %s should exist", table)
	}

	cols, err := TableColumns(db, "products")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "user_product_id", "name", "price"}, cols)
}

func TestProvisionIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock_test.db")
	p := NewProvisioner(5000)

	require.NoError(t, p.Provision(path))

	db, err := p.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO products (user_product_id, name, price) VALUES (1, 'widget', 9.5)`).Error)
	require.NoError(t, Close(db))

	// A second provisioning run must not touch existing data.
	require.NoError(t, p.Provision(path))

	db, err = p.Open(path)
	require.NoError(t, err)
	defer Close(db)

	var count int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM products`).Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProvisionUpgradesOldSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock_test.db")

	// Simulate a store created before typed columns existed.
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE stock_columns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		column_name TEXT UNIQUE NOT NULL
	)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO stock_columns (column_name) VALUES ('legacy_col')`).Error)
	require.NoError(t, Close(db))

	p := NewProvisioner(5000)
	require.NoError(t, p.Provision(path))

	db, err = p.Open(path)
	require.NoError(t, err)
	defer Close(db)

	cols, err := TableColumns(db, "stock_columns")
	require.NoError(t, err)
	assert.Contains(t, cols, "column_type")
	assert.Contains(t, cols, "options")

	var colType string
	require.NoError(t, db.Raw(`SELECT column_type FROM stock_columns WHERE column_name = 'legacy_col'`).Scan(&colType).Error)
	assert.Equal(t, "text", colType)
}

func TestOpenUnknownDirectoryFails(t *testing.T) {
	p := NewProvisioner(5000)
	_, err := p.Open(filepath.Join(t.TempDir(), "missing", "nested", "stock.db"))
	assert.Error(t, err)
}

func TestContextValidate(t *testing.T) {
	var nilCtx *Context
	assert.ErrorIs(t, nilCtx.Validate(), ErrNoTenant)
	assert.ErrorIs(t, (&Context{}).Validate(), ErrNoTenant)
}

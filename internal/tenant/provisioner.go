// internal/tenant/provisioner.go
package tenant

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrProvisioning wraps any failure to create or upgrade a tenant store.
var ErrProvisioning = errors.New("store provisioning failed")

// Provisioner creates and opens per-tenant stock stores. One SQLite file per
// tenant; connections are request-scoped, never pooled across tenants.
type Provisioner struct {
	BusyTimeout int // milliseconds
}

func NewProvisioner(busyTimeoutMs int) *Provisioner {
	return &Provisioner{BusyTimeout: busyTimeoutMs}
}

func (p *Provisioner) dsn(path string) string {
	return fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", path, p.BusyTimeout)
}

// Open acquires one connection to a tenant store for the duration of a
// request. Callers must release it with Close.
func (p *Provisioner) Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(p.dsn(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open tenant store %s: %w", path, err)
	}
	return db, nil
}

// Close releases the store connection unconditionally.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Provision creates a tenant's stock store and its four tables, or upgrades
// an existing store by adding any base column that is missing. Safe to call
// on an already-provisioned store; it never drops or renames anything.
func (p *Provisioner) Provision(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrProvisioning, err)
		}
	}

	db, err := p.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvisioning, err)
	}
	defer Close(db)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_product_id INTEGER,
			name TEXT NOT NULL,
			price REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS inventory (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0,
			location TEXT NOT NULL DEFAULT '',
			last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE,
			UNIQUE(product_id, location)
		)`,
		`CREATE TABLE IF NOT EXISTS stock_columns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			column_name TEXT UNIQUE NOT NULL,
			column_type TEXT NOT NULL DEFAULT 'text',
			options TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS column_visibility (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			column_name TEXT NOT NULL,
			is_visible INTEGER NOT NULL DEFAULT 1,
			UNIQUE(column_name)
		)`,
	}

	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrProvisioning, err)
		}
	}

	// Upgrade path for stores created by an older schema version: add any
	// base column that is missing, leave existing data untouched.
	upgrades := map[string][]columnSpec{
		"products": {
			{"user_product_id", "INTEGER", ""},
			{"name", "TEXT NOT NULL", `""`},
			{"price", "REAL NOT NULL", "0.0"},
		},
		"stock_columns": {
			{"column_type", "TEXT NOT NULL", `"text"`},
			{"options", "TEXT", ""},
		},
		"inventory": {
			{"product_id", "INTEGER", ""},
			{"quantity", "INTEGER NOT NULL", "0"},
			{"location", "TEXT NOT NULL", `""`},
			{"last_updated", "TIMESTAMP", "CURRENT_TIMESTAMP"},
		},
	}

	for table, specs := range upgrades {
		existing, err := TableColumns(db, table)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrProvisioning, err)
		}
		for _, spec := range specs {
			if containsColumn(existing, spec.name) {
				continue
			}
			stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, spec.name, spec.typ)
			if spec.dflt != "" {
				stmt += " DEFAULT " + spec.dflt
			}
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrProvisioning, err)
			}
		}
	}

	return nil
}

type columnSpec struct {
	name string
	typ  string
	dflt string
}

// TableColumns lists a table's physical column names in declaration order.
func TableColumns(db *gorm.DB, table string) ([]string, error) {
	var rows []struct {
		Name string `gorm:"column:name"`
	}
	if err := db.Raw(fmt.Sprintf("PRAGMA table_info(%s)", table)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	return names, nil
}

func containsColumn(cols []string, name string) bool {
	for _, c := range cols {
		if c == name {
			return true
		}
	}
	return false
}

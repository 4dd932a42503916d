// internal/models/catalog.go
package models

// Types mapping the per-tenant stock store. The four tables are created by
// the tenant provisioner with raw DDL; these structs only shape reads and
// writes, they are never auto-migrated.

// ReservedColumns are the base product columns a tenant cannot shadow,
// rename, or hide.
var ReservedColumns = []string{"id", "user_product_id", "name", "price"}

func IsReservedColumn(name string) bool {
	for _, c := range ReservedColumns {
		if c == name {
			return true
		}
	}
	return false
}

// AttributeDefinition describes one user-defined product column.
// Options holds the serialized option list for select columns.
type AttributeDefinition struct {
	ID         int64      `json:"id" gorm:"column:id;primaryKey"`
	ColumnName string     `json:"column_name" gorm:"column:column_name"`
	ColumnType ColumnType `json:"column_type" gorm:"column:column_type"`
	Options    string     `json:"-" gorm:"column:options"`

	// Decoded from Options; populated by the attribute registry.
	OptionList []string `json:"options" gorm:"-"`
}

func (AttributeDefinition) TableName() string { return "stock_columns" }

// VisibilityPreference is a per-column boolean display flag. A column with
// no row is visible.
type VisibilityPreference struct {
	ID         int64  `json:"id" gorm:"column:id;primaryKey"`
	UserID     string `json:"user_id" gorm:"column:user_id"`
	ColumnName string `json:"column_name" gorm:"column:column_name"`
	IsVisible  bool   `json:"is_visible" gorm:"column:is_visible"`
}

func (VisibilityPreference) TableName() string { return "column_visibility" }

// InventoryEntry is one (product, location) quantity record. At most one
// entry exists per product and location string; "" is a valid location.
type InventoryEntry struct {
	ID          int64  `json:"inventory_id" gorm:"column:id;primaryKey"`
	ProductID   int64  `json:"product_id" gorm:"column:product_id"`
	Quantity    int64  `json:"quantity" gorm:"column:quantity"`
	Location    string `json:"location" gorm:"column:location"`
	LastUpdated string `json:"last_updated" gorm:"column:last_updated"`
}

func (InventoryEntry) TableName() string { return "inventory" }

// Product carries the fixed columns plus the tenant's dynamic attributes.
// Dynamic values stay stringly typed the way the store keeps them; number
// columns may surface as float64 after scanning.
type Product struct {
	ID            int64                  `json:"id"`
	UserProductID int64                  `json:"user_product_id"`
	Name          string                 `json:"name"`
	Price         float64                `json:"price"`
	Dynamic       map[string]interface{} `json:"attributes,omitempty"`
}

// ColumnDescriptor is one entry of the catalog's merged column listing:
// reserved columns with their fixed types followed by registry entries.
type ColumnDescriptor struct {
	Name     string     `json:"name"`
	Type     ColumnType `json:"column_type"`
	Options  []string   `json:"options"`
	Reserved bool       `json:"reserved"`
}

// ProductInventory pairs a product with its ledger rows for the joined
// inventory listing.
type ProductInventory struct {
	Product Product          `json:"product"`
	Entries []InventoryEntry `json:"inventory_entries"`
}

// internal/services/inventory_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/stoktrack/stok-backend/internal/models"
	"github.com/stoktrack/stok-backend/internal/tenant"
)

// InventoryService is the per-location stock ledger. An entry either exists
// for a (product, location) pair or it does not; the store's unique
// constraint is the only arbiter under concurrency.
type InventoryService struct{}

func NewInventoryService() *InventoryService {
	return &InventoryService{}
}

const timestampLayout = "2006-01-02 15:04:05"

// Upsert writes one ledger entry. With an inventoryID it updates that exact
// row, scoped to the product; moving it onto an occupied location surfaces
// the uniqueness conflict instead of merging. Without an id it inserts or
// replaces on (product_id, location), collapsing a duplicate-location
// conflict into the latest write.
func (s *InventoryService) Upsert(tc *tenant.Context, productID int64, location string, quantity int64, inventoryID *int64) (*models.InventoryEntry, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	location = strings.TrimSpace(location)
	now := time.Now().Format(timestampLayout)

	if inventoryID != nil {
		result := tc.DB.Exec(
			`UPDATE inventory SET quantity = ?, location = ?, last_updated = ? WHERE id = ? AND product_id = ?`,
			quantity, location, now, *inventoryID, productID,
		)
		if result.Error != nil {
			if isUniqueViolation(result.Error) {
				return nil, fmt.Errorf("%w: product %d location %q", ErrDuplicateLocation, productID, location)
			}
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, fmt.Errorf("%w: id %d", ErrEntryNotFound, *inventoryID)
		}
		return s.get(tc, *inventoryID)
	}

	err := tc.DB.Exec(
		`INSERT OR REPLACE INTO inventory (product_id, quantity, location, last_updated) VALUES (?, ?, ?, ?)`,
		productID, quantity, location, now,
	).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
		}
		return nil, err
	}

	var entry models.InventoryEntry
	if err := tc.DB.Where("product_id = ? AND location = ?", productID, location).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes one entry. Deleting an id that no longer exists is a
// success; the end state is the same.
func (s *InventoryService) Delete(tc *tenant.Context, inventoryID int64) error {
	if err := tc.Validate(); err != nil {
		return err
	}
	return tc.DB.Exec(`DELETE FROM inventory WHERE id = ?`, inventoryID).Error
}

// List joins products with their ledger rows. The name filter is a
// case-sensitive substring match; the location filter is exact and drops
// products with no entry there entirely. Without a location filter, a
// product with no rows gets one synthetic placeholder so it always has a
// displayable entry.
func (s *InventoryService) List(tc *tenant.Context, nameFilter, locationFilter string) ([]models.ProductInventory, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	productQuery := `SELECT id, user_product_id, name, price FROM products`
	var productArgs []interface{}
	if nameFilter != "" {
		// LIKE is case-insensitive for ASCII in SQLite; instr keeps the
		// substring match case-sensitive.
		productQuery += ` WHERE instr(name, ?) > 0`
		productArgs = append(productArgs, nameFilter)
	}
	productQuery += ` ORDER BY user_product_id`

	var products []models.Product
	var rows []map[string]interface{}
	if err := tc.DB.Raw(productQuery, productArgs...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		products = append(products, rowToProduct(row))
	}

	result := make([]models.ProductInventory, 0, len(products))
	for _, product := range products {
		entryQuery := `SELECT id, product_id, quantity, location, last_updated FROM inventory WHERE product_id = ?`
		entryArgs := []interface{}{product.ID}
		if locationFilter != "" {
			entryQuery += ` AND location = ?`
			entryArgs = append(entryArgs, locationFilter)
		}
		entryQuery += ` ORDER BY location`

		var entries []models.InventoryEntry
		if err := tc.DB.Raw(entryQuery, entryArgs...).Scan(&entries).Error; err != nil {
			return nil, err
		}

		if len(entries) == 0 {
			if locationFilter != "" {
				// Nothing stocked at the requested location: the product is
				// excluded, not shown with a zero row.
				continue
			}
			entries = []models.InventoryEntry{{ProductID: product.ID, Quantity: 0, Location: ""}}
		}

		product.Dynamic = nil
		result = append(result, models.ProductInventory{Product: product, Entries: entries})
	}
	return result, nil
}

// Locations lists the distinct non-empty locations in use.
func (s *InventoryService) Locations(tc *tenant.Context) ([]string, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	var locations []string
	err := tc.DB.Raw(
		`SELECT DISTINCT location FROM inventory WHERE location != '' ORDER BY location`,
	).Scan(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (s *InventoryService) get(tc *tenant.Context, inventoryID int64) (*models.InventoryEntry, error) {
	var entry models.InventoryEntry
	if err := tc.DB.Where("id = ?", inventoryID).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

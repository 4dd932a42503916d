// internal/services/inventory_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoktrack/stok-backend/internal/models"
)

func TestUpsertCollapsesSameLocation(t *testing.T) {
	tc := newTestTenant(t)
	_, catalog := newTestCatalog()
	inventory := NewInventoryService()

	product, err := catalog.CreateProduct(tc, "widget", "1", nil)
	require.NoError(t, err)

	_, err = inventory.Upsert(tc, product.ID, "depot-a", 3, nil)
	require.NoError(t, err)

	// Second write to the same location replaces, it does not duplicate.
	entry, err := inventory.Upsert(tc, product.ID, "depot-a", 7, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), entry.Quantity)

	var count int64
	require.NoError(t, tc.DB.Raw(
		`SELECT COUNT(*) FROM inventory WHERE product_id = ? AND location = 'depot-a'`, product.ID,
	).Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertRejectsNegativeQuantity(t *testing.T) {
	tc := newTestTenant(t)
	inventory := NewInventoryService()

	_, err := inventory.Upsert(tc, 1, "depot-a", -1, nil)
	assert.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestUpsertUnknownProduct(t *testing.T) {
	tc := newTestTenant(t)
	inventory := NewInventoryService()

	_, err := inventory.Upsert(tc, 999, "depot-a", 1, nil)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpsertByIDUpdatesExactRow(t *testing.T) {
	tc := newTestTenant(t)
	_, catalog := newTestCatalog()
	inventory := NewInventoryService()

	product, err := catalog.CreateProduct(tc, "widget", "1", nil)
	require.NoError(t, err)

	entry, err := inventory.Upsert(tc, product.ID, "depot-a", 3, nil)
	require.NoError(t, err)

	updated, err := inventory.Upsert(tc, product.ID, "depot-b", 9, &entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, updated.ID)
	assert.Equal(t, "depot-b", updated.Location)
	assert.Equal(t, int64(9), updated.Quantity)
}

func TestUpsertByIDConflictsOnOccupiedLocation(t *testing.T) {
	tc := newTestTenant(t)
	_, catalog := newTestCatalog()
	inventory := NewInventoryService()

	product, err := catalog.CreateProduct(tc, "widget", "1", nil)
	require.NoError(t, err)

	_, err = inventory.Upsert(tc, product.ID, "depot-a", 3, nil)
	require.NoError(t, err)
	entry, err := inventory.Upsert(tc, product.ID, "depot-b", 5, nil)
	require.NoError(t, err)

	// Moving depot-b's row onto depot-a must surface the conflict.
	_, err = inventory.Upsert(tc, product.ID, "depot-a", 5, &entry.ID)
	assert.ErrorIs(t, err, ErrDuplicateLocation)
}

func TestUpsertByIDUnknownEntry(t *testing.T) {
	tc := newTestTenant(t)
	_, catalog := newTestCatalog()
	inventory := NewInventoryService()

	product, err := catalog.CreateProduct(tc, "widget", "1", nil)
	require.NoError(t, err)

	missing := int64(9999)
	_, err = inventory.Upsert(tc, product.ID, "depot-a", 1, &missing)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	tc := newTestTenant(t)
	_, catalog := newTestCatalog()
	inventory := NewInventoryService()

	product, err := catalog.CreateProduct(tc, "widget", "1", nil)
	require.NoError(t, err)
	entry, err := inventory.Upsert(tc, product.ID, "depot-a", 3, nil)
	require.NoError(t, err)

	require.NoError(t, inventory.Delete(tc, entry.ID))
	require.NoError(t, inventory.Delete(tc, entry.ID))
}

func TestListAddsPlaceholderForUnstockedProduct(t *testing.T) {
	tc := newTestTenant(t)
	_, catalog := newTestCatalog()
	inventory := NewInventoryService()

	product, err := catalog.CreateProduct(tc, "widget", "1", nil)
	require.NoError(t, err)

	// Remove the default seeded row so the product has no ledger entries.
	require.NoError(t, tc.DB.Exec(`DELETE FROM inventory WHERE product_id = ?`, product.ID).Error)

	listing, err := inventory.List(tc, "", "")
	require.NoError(t, err)
	require.Len(t, listing, 1)
	require.Len(t, listing[0].Entries, 1)
	assert.Equal(t, int64(0), listing[0].Entries[0].ID)
	assert.Equal(t, product.ID, listing[0].Entries[0].ProductID)
	assert.Equal(t, int64(0), listing[0].Entries[0].Quantity)
}

func TestListNameFilterIsCaseSensitiveSubstring(t *testing.T) {
	tc := newTestTenant(t)
	_, catalog := newTestCatalog()
	inventory := NewInventoryService()

	_, err := catalog.CreateProduct(tc, "Blue Widget", "1", nil)
	require.NoError(t, err)
	_, err = catalog.CreateProduct(tc, "blue gadget", "1", nil)
	require.NoError(t, err)

	listing, err := inventory.List(tc, "Blue", "")
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, "Blue Widget", listing[0].Product.Name)

	listing, err = inventory.List(tc, "blue", "")
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, "blue gadget", listing[0].Product.Name)
}

func TestListLocationFilterExcludesProducts(t *testing.T) {
	tc := newTestTenant(t)
	_, catalog := newTestCatalog()
	inventory := NewInventoryService()

	stocked, err := catalog.CreateProduct(tc, "stocked", "1", nil)
	require.NoError(t, err)
	_, err = catalog.CreateProduct(tc, "elsewhere", "1", nil)
	require.NoError(t, err)

	_, err = inventory.Upsert(tc, stocked.ID, "depot-a", 4, nil)
	require.NoError(t, err)

	listing, err := inventory.List(tc, "", "depot-a")
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, stocked.ID, listing[0].Product.ID)
	require.Len(t, listing[0].Entries, 1)
	assert.Equal(t, int64(4), listing[0].Entries[0].Quantity)
}

func TestLocationsDistinctNonEmpty(t *testing.T) {
	tc := newTestTenant(t)
	_, catalog := newTestCatalog()
	inventory := NewInventoryService()

	a, err := catalog.CreateProduct(tc, "a", "1", nil)
	require.NoError(t, err)
	b, err := catalog.CreateProduct(tc, "b", "1", nil)
	require.NoError(t, err)

	for _, loc := range []string{"depot-b", "depot-a"} {
		_, err = inventory.Upsert(tc, a.ID, loc, 1, nil)
		require.NoError(t, err)
	}
	_, err = inventory.Upsert(tc, b.ID, "depot-a", 2, nil)
	require.NoError(t, err)

	locations, err := inventory.Locations(tc)
	require.NoError(t, err)
	// Sorted, deduplicated, and the seeded empty location never appears.
	assert.Equal(t, []string{"depot-a", "depot-b"}, locations)
}

func TestListEntriesType(t *testing.T) {
	tc := newTestTenant(t)
	_, catalog := newTestCatalog()
	inventory := NewInventoryService()

	product, err := catalog.CreateProduct(tc, "widget", "1", nil)
	require.NoError(t, err)

	listing, err := inventory.List(tc, "", "")
	require.NoError(t, err)
	require.Len(t, listing, 1)

	// The seeded default row comes back as a real entry, not a placeholder.
	var entries []models.InventoryEntry
	require.NoError(t, tc.DB.Where("product_id = ?", product.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, entries[0].ID, listing[0].Entries[0].ID)
}

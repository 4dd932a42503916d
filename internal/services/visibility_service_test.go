// internal/services/visibility_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoktrack/stok-backend/internal/models"
)

func TestVisibilityDefaultsToVisible(t *testing.T) {
	tc := newTestTenant(t)
	attributes := NewAttributeService()
	visibility := NewVisibilityService()

	_, err := attributes.Define(tc, "color", models.ColumnTypeText, "")
	require.NoError(t, err)

	all, err := visibility.GetAll(tc)
	require.NoError(t, err)

	assert.True(t, all["name"])
	assert.True(t, all["price"])
	assert.True(t, all["user_product_id"])
	assert.True(t, all["color"])

	_, hasID := all["id"]
	assert.False(t, hasID, "internal id must never be listed")
}

func TestVisibilitySetAndOverwrite(t *testing.T) {
	tc := newTestTenant(t)
	attributes := NewAttributeService()
	visibility := NewVisibilityService()

	_, err := attributes.Define(tc, "color", models.ColumnTypeText, "")
	require.NoError(t, err)

	require.NoError(t, visibility.Set(tc, "color", false))
	all, err := visibility.GetAll(tc)
	require.NoError(t, err)
	assert.False(t, all["color"])

	require.NoError(t, visibility.Set(tc, "color", true))
	all, err = visibility.GetAll(tc)
	require.NoError(t, err)
	assert.True(t, all["color"])
}

func TestVisibilityProtectsReservedColumns(t *testing.T) {
	tc := newTestTenant(t)
	visibility := NewVisibilityService()

	for _, col := range models.ReservedColumns {
		err := visibility.Set(tc, col, false)
		assert.ErrorIs(t, err, ErrProtectedColumn, "column %q", col)
	}
}

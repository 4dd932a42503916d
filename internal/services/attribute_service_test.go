// internal/services/attribute_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoktrack/stok-backend/internal/models"
	"github.com/stoktrack/stok-backend/internal/tenant"
)

func TestSanitizeColumnName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Shelf Code", "shelf_code"},
		{"Renk", "renk"},
		{"weight (kg)", "weight_kg"},
		{"a-b.c;d", "abcd"},
		{"  ", "__"},
		{"!!!", ""},
		{"Größe", "größe"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, SanitizeColumnName(tt.input), "input %q", tt.input)
	}
}

func TestDefineCreatesPhysicalColumn(t *testing.T) {
	tc := newTestTenant(t)
	s := NewAttributeService()

	def, err := s.Define(tc, "Shelf Code", models.ColumnTypeText, "")
	require.NoError(t, err)
	assert.Equal(t, "shelf_code", def.ColumnName)
	assert.Equal(t, models.ColumnTypeText, def.ColumnType)
	assert.Empty(t, def.OptionList)

	cols, err := tenant.TableColumns(tc.DB, "products")
	require.NoError(t, err)
	assert.Contains(t, cols, "shelf_code")
}

func TestDefineDefaultsToText(t *testing.T) {
	tc := newTestTenant(t)
	s := NewAttributeService()

	def, err := s.Define(tc, "note", "", "")
	require.NoError(t, err)
	assert.Equal(t, models.ColumnTypeText, def.ColumnType)
}

func TestDefineRejectsReservedAndEmptyNames(t *testing.T) {
	tc := newTestTenant(t)
	s := NewAttributeService()

	for _, name := range []string{"name", "price", "id", "user_product_id", "!!!", ""} {
		_, err := s.Define(tc, name, models.ColumnTypeText, "")
		assert.ErrorIs(t, err, ErrInvalidAttributeName, "name %q", name)
	}
}

func TestDefineRejectsDuplicates(t *testing.T) {
	tc := newTestTenant(t)
	s := NewAttributeService()

	_, err := s.Define(tc, "color", models.ColumnTypeText, "")
	require.NoError(t, err)

	_, err = s.Define(tc, "Color", models.ColumnTypeText, "")
	assert.ErrorIs(t, err, ErrDuplicateAttribute)
}

func TestDefineSelectRequiresOptions(t *testing.T) {
	tc := newTestTenant(t)
	s := NewAttributeService()

	_, err := s.Define(tc, "size", models.ColumnTypeSelect, " , ,")
	assert.ErrorIs(t, err, ErrEmptyOptionSet)

	def, err := s.Define(tc, "size", models.ColumnTypeSelect, "S, M, L")
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "M", "L"}, def.OptionList)
}

func TestDefineSetsVisibleByDefault(t *testing.T) {
	tc := newTestTenant(t)
	s := NewAttributeService()

	_, err := s.Define(tc, "color", models.ColumnTypeText, "")
	require.NoError(t, err)

	visibility, err := NewVisibilityService().GetAll(tc)
	require.NoError(t, err)
	assert.True(t, visibility["color"])
}

func TestRenameCascades(t *testing.T) {
	tc := newTestTenant(t)
	s := NewAttributeService()

	_, err := s.Define(tc, "color", models.ColumnTypeSelect, "Red, Blue")
	require.NoError(t, err)
	require.NoError(t, NewVisibilityService().Set(tc, "color", false))

	def, err := s.Rename(tc, "color", "Paint Color")
	require.NoError(t, err)
	assert.Equal(t, "paint_color", def.ColumnName)
	assert.Equal(t, []string{"Red", "Blue"}, def.OptionList)

	// The physical column moved with the definition.
	cols, err := tenant.TableColumns(tc.DB, "products")
	require.NoError(t, err)
	assert.Contains(t, cols, "paint_color")
	assert.NotContains(t, cols, "color")

	// So did the visibility preference.
	visibility, err := NewVisibilityService().GetAll(tc)
	require.NoError(t, err)
	assert.False(t, visibility["paint_color"])

	_, err = s.Get(tc, "color")
	assert.ErrorIs(t, err, ErrAttributeNotFound)
}

func TestRenameUnknownColumn(t *testing.T) {
	tc := newTestTenant(t)
	s := NewAttributeService()

	_, err := s.Rename(tc, "ghost", "new_name")
	assert.ErrorIs(t, err, ErrAttributeNotFound)
}

func TestRenameCollision(t *testing.T) {
	tc := newTestTenant(t)
	s := NewAttributeService()

	_, err := s.Define(tc, "color", models.ColumnTypeText, "")
	require.NoError(t, err)
	_, err = s.Define(tc, "size", models.ColumnTypeText, "")
	require.NoError(t, err)

	_, err = s.Rename(tc, "size", "color")
	assert.ErrorIs(t, err, ErrDuplicateAttribute)
}

func TestSetOptionsOnlyForSelect(t *testing.T) {
	tc := newTestTenant(t)
	s := NewAttributeService()

	_, err := s.Define(tc, "note", models.ColumnTypeText, "")
	require.NoError(t, err)
	err = s.SetOptions(tc, "note", "A, B")
	assert.ErrorIs(t, err, ErrNotASelectAttribute)

	_, err = s.Define(tc, "size", models.ColumnTypeSelect, "S, M")
	require.NoError(t, err)
	require.NoError(t, s.SetOptions(tc, "size", "S, M, L, XL"))

	def, err := s.Get(tc, "size")
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "M", "L", "XL"}, def.OptionList)

	// Clearing the option set entirely is allowed.
	require.NoError(t, s.SetOptions(tc, "size", ""))
	def, err = s.Get(tc, "size")
	require.NoError(t, err)
	assert.Empty(t, def.OptionList)
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	tc := newTestTenant(t)
	s := NewAttributeService()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := s.Define(tc, name, models.ColumnTypeText, "")
		require.NoError(t, err)
	}

	defs, err := s.List(tc)
	require.NoError(t, err)
	require.Len(t, defs, 3)
	assert.Equal(t, "zeta", defs[0].ColumnName)
	assert.Equal(t, "alpha", defs[1].ColumnName)
	assert.Equal(t, "mid", defs[2].ColumnName)
}

func TestDecodeOptions(t *testing.T) {
	tests := []struct {
		stored   string
		expected []string
	}{
		{`["Red","Blue"]`, []string{"Red", "Blue"}},
		{``, []string{}},
		{`[Red, 'Blue', "Green"]`, []string{"Red", "Blue", "Green"}},
		{`[\"Red\", \"Blue\"]`, []string{"Red", "Blue"}},
		{`Red,Blue`, []string{"Red", "Blue"}},
		{`[ , ]`, []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, DecodeOptions(tt.stored), "stored %q", tt.stored)
	}
}

// internal/services/visibility_service.go
package services

import (
	"fmt"

	"github.com/stoktrack/stok-backend/internal/models"
	"github.com/stoktrack/stok-backend/internal/tenant"
)

// VisibilityService stores per-column display preferences. A column with no
// recorded preference is visible.
type VisibilityService struct{}

func NewVisibilityService() *VisibilityService {
	return &VisibilityService{}
}

// GetAll maps every displayable product column to its visibility flag,
// defaulting to true where no preference row exists. The internal id column
// is never part of the map.
func (s *VisibilityService) GetAll(tc *tenant.Context) (map[string]bool, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	var prefs []models.VisibilityPreference
	if err := tc.DB.Find(&prefs).Error; err != nil {
		return nil, err
	}

	visibility := make(map[string]bool)
	for _, p := range prefs {
		visibility[p.ColumnName] = p.IsVisible
	}

	columns, err := tenant.TableColumns(tc.DB, "products")
	if err != nil {
		return nil, err
	}
	for _, col := range columns {
		if col == "id" {
			continue
		}
		if _, ok := visibility[col]; !ok {
			visibility[col] = true
		}
	}

	return visibility, nil
}

// Set upserts one preference. The reserved base columns always stay visible.
func (s *VisibilityService) Set(tc *tenant.Context, column string, visible bool) error {
	if err := tc.Validate(); err != nil {
		return err
	}

	if models.IsReservedColumn(column) {
		return fmt.Errorf("%w: %q", ErrProtectedColumn, column)
	}

	flag := 0
	if visible {
		flag = 1
	}
	return tc.DB.Exec(
		`INSERT OR REPLACE INTO column_visibility (user_id, column_name, is_visible) VALUES (?, ?, ?)`,
		tc.UserID.String(), column, flag,
	).Error
}

// internal/services/attribute_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"github.com/stoktrack/stok-backend/internal/models"
	"github.com/stoktrack/stok-backend/internal/tenant"
)

// AttributeService is the registry for user-defined product columns. Every
// definition is backed by a physical TEXT column on the tenant's products
// table; the logical type lives in stock_columns metadata.
type AttributeService struct{}

func NewAttributeService() *AttributeService {
	return &AttributeService{}
}

// SanitizeColumnName reduces raw user input to a safe identifier: letters,
// digits and spaces are kept, spaces become underscores, everything is
// lowercased. An empty result means the input was unusable.
func SanitizeColumnName(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(strings.ReplaceAll(b.String(), " ", "_"))
}

// Define registers a new column: metadata row, physical column, and a
// visible-by-default preference, in one transaction.
func (s *AttributeService) Define(tc *tenant.Context, nameRaw string, colType models.ColumnType, optionsRaw string) (*models.AttributeDefinition, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	name := SanitizeColumnName(nameRaw)
	if name == "" || models.IsReservedColumn(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAttributeName, nameRaw)
	}

	if colType == "" {
		colType = models.ColumnTypeText
	}
	if !colType.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidAttributeName, colType)
	}

	var optionList []string
	var optionsJSON string
	if colType == models.ColumnTypeSelect {
		optionList = splitOptions(optionsRaw)
		if len(optionList) == 0 {
			return nil, ErrEmptyOptionSet
		}
		encoded, err := json.Marshal(optionList)
		if err != nil {
			return nil, err
		}
		optionsJSON = string(encoded)
	}

	existing, err := tenant.TableColumns(tc.DB, "products")
	if err != nil {
		return nil, err
	}
	for _, col := range existing {
		if strings.EqualFold(col, name) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAttribute, name)
		}
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(fmt.Sprintf(`ALTER TABLE products ADD COLUMN "%s" TEXT DEFAULT ''`, name)).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			`INSERT INTO stock_columns (column_name, column_type, options) VALUES (?, ?, ?)`,
			name, string(colType), optionsJSON,
		).Error; err != nil {
			return err
		}
		// New columns start out visible for the owning user.
		return tx.Exec(
			`INSERT OR REPLACE INTO column_visibility (user_id, column_name, is_visible) VALUES (?, ?, 1)`,
			tc.UserID.String(), name,
		).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAttribute, name)
		}
		return nil, err
	}

	return s.Get(tc, name)
}

// Rename changes a column's name in place: metadata, physical column, and
// every visibility preference row recorded under the old name.
func (s *AttributeService) Rename(tc *tenant.Context, oldName, newNameRaw string) (*models.AttributeDefinition, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	newName := SanitizeColumnName(newNameRaw)
	if newName == "" || models.IsReservedColumn(newName) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAttributeName, newNameRaw)
	}

	if _, err := s.Get(tc, oldName); err != nil {
		return nil, err
	}

	existing, err := tenant.TableColumns(tc.DB, "products")
	if err != nil {
		return nil, err
	}
	for _, col := range existing {
		if strings.EqualFold(col, newName) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAttribute, newName)
		}
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(fmt.Sprintf(`ALTER TABLE products RENAME COLUMN "%s" TO "%s"`, oldName, newName)).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			`UPDATE stock_columns SET column_name = ? WHERE column_name = ?`,
			newName, oldName,
		).Error; err != nil {
			return err
		}
		// Cascade into every preference row for the old name. Each tenant
		// owns its store, so this touches only the tenant's own rows.
		return tx.Exec(
			`UPDATE column_visibility SET column_name = ? WHERE column_name = ?`,
			newName, oldName,
		).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAttribute, newName)
		}
		return nil, err
	}

	return s.Get(tc, newName)
}

// SetOptions replaces a select column's option list verbatim. Existing
// product values are not revalidated against the new list.
func (s *AttributeService) SetOptions(tc *tenant.Context, name, optionsRaw string) error {
	if err := tc.Validate(); err != nil {
		return err
	}

	def, err := s.Get(tc, name)
	if err != nil {
		return err
	}
	if def.ColumnType != models.ColumnTypeSelect {
		return fmt.Errorf("%w: %q", ErrNotASelectAttribute, name)
	}

	encoded, err := json.Marshal(splitOptions(optionsRaw))
	if err != nil {
		return err
	}

	return tc.DB.Exec(
		`UPDATE stock_columns SET options = ? WHERE column_name = ?`,
		string(encoded), name,
	).Error
}

// Get loads one definition with its decoded option list.
func (s *AttributeService) Get(tc *tenant.Context, name string) (*models.AttributeDefinition, error) {
	var def models.AttributeDefinition
	err := tc.DB.Where("column_name = ?", name).First(&def).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrAttributeNotFound, name)
		}
		return nil, err
	}
	def.OptionList = DecodeOptions(def.Options)
	return &def, nil
}

// List returns every definition in registration order.
func (s *AttributeService) List(tc *tenant.Context) ([]models.AttributeDefinition, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	var defs []models.AttributeDefinition
	if err := tc.DB.Order("id").Find(&defs).Error; err != nil {
		return nil, err
	}
	for i := range defs {
		defs[i].OptionList = DecodeOptions(defs[i].Options)
	}
	return defs, nil
}

// DecodeOptions turns a stored option string back into an ordered list.
// Strict JSON decoding is tried first; on failure a tolerant scan strips
// brackets, splits on commas and trims quoting from each token. Malformed
// legacy or hand-edited data is accepted input here, not an error.
func DecodeOptions(stored string) []string {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return []string{}
	}

	var decoded []string
	if err := json.Unmarshal([]byte(stored), &decoded); err == nil {
		return decoded
	}

	cleaned := strings.NewReplacer("[", "", "]", "").Replace(stored)
	options := []string{}
	for _, token := range strings.Split(cleaned, ",") {
		token = strings.ReplaceAll(token, `\"`, `"`)
		token = strings.TrimSpace(token)
		token = strings.Trim(token, `'"`)
		if token != "" {
			options = append(options, token)
		}
	}
	return options
}

// splitOptions parses raw comma-separated user input, dropping empties.
func splitOptions(raw string) []string {
	options := []string{}
	for _, token := range strings.Split(raw, ",") {
		if token = strings.TrimSpace(token); token != "" {
			options = append(options, token)
		}
	}
	return options
}

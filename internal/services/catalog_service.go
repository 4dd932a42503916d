// internal/services/catalog_service.go
package services

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/stoktrack/stok-backend/internal/models"
	"github.com/stoktrack/stok-backend/internal/tenant"
)

// CatalogService owns the tenant's product table: dynamic-column reads,
// typed validation, and row CRUD. All validation happens before the first
// write; multi-step units run inside one transaction.
type CatalogService struct {
	attributes *AttributeService
}

func NewCatalogService(attributes *AttributeService) *CatalogService {
	return &CatalogService{attributes: attributes}
}

// reservedColumnTypes fixes the logical types of the base columns.
var reservedColumnTypes = map[string]models.ColumnType{
	"user_product_id": models.ColumnTypeNumber,
	"name":            models.ColumnTypeText,
	"price":           models.ColumnTypeNumber,
}

// ListColumns merges the base columns with the attribute registry, in
// physical order, excluding the internal id.
func (s *CatalogService) ListColumns(tc *tenant.Context) ([]models.ColumnDescriptor, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	columns, defs, err := s.schema(tc)
	if err != nil {
		return nil, err
	}

	descriptors := make([]models.ColumnDescriptor, 0, len(columns))
	for _, col := range columns {
		if col == "id" {
			continue
		}
		if typ, ok := reservedColumnTypes[col]; ok {
			descriptors = append(descriptors, models.ColumnDescriptor{
				Name: col, Type: typ, Options: []string{}, Reserved: true,
			})
			continue
		}
		if def, ok := defs[col]; ok {
			descriptors = append(descriptors, models.ColumnDescriptor{
				Name: col, Type: def.ColumnType, Options: def.OptionList,
			})
		}
	}
	return descriptors, nil
}

// CreateProduct validates and inserts a product row together with its
// default inventory entry (no location, zero quantity) in one transaction.
// The tenant-facing display id is assigned as max+1 inside the same
// transaction, so a rolled-back create never burns a number.
func (s *CatalogService) CreateProduct(tc *tenant.Context, name, priceRaw string, dynamicValues map[string]string) (*models.Product, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	price, err := parsePrice(priceRaw)
	if err != nil {
		return nil, err
	}

	columns, defs, err := s.schema(tc)
	if err != nil {
		return nil, err
	}

	dynCols, dynVals, err := validateDynamicValues(columns, defs, dynamicValues)
	if err != nil {
		return nil, err
	}

	var productID int64
	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		var nextDisplayID int64
		if err := tx.Raw(`SELECT COALESCE(MAX(user_product_id), 0) + 1 FROM products`).Scan(&nextDisplayID).Error; err != nil {
			return err
		}

		insertCols := []string{"user_product_id", "name", "price"}
		insertVals := []interface{}{nextDisplayID, name, price}
		for i, col := range dynCols {
			insertCols = append(insertCols, col)
			insertVals = append(insertVals, dynVals[i])
		}

		quoted := make([]string, len(insertCols))
		placeholders := make([]string, len(insertCols))
		for i, col := range insertCols {
			quoted[i] = `"` + col + `"`
			placeholders[i] = "?"
		}

		stmt := fmt.Sprintf(
			`INSERT INTO products (%s) VALUES (%s)`,
			strings.Join(quoted, ", "), strings.Join(placeholders, ", "),
		)
		if err := tx.Exec(stmt, insertVals...).Error; err != nil {
			return err
		}

		if err := tx.Raw(`SELECT last_insert_rowid()`).Scan(&productID).Error; err != nil {
			return err
		}

		// Every product starts with one unlocated zero-quantity ledger row.
		return tx.Exec(
			`INSERT INTO inventory (product_id, quantity, location) VALUES (?, 0, '')`,
			productID,
		).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(tc, productID)
}

// UpdateProduct replaces a product row wholesale: name, price, and every
// dynamic column. Columns not supplied are written back empty, not kept.
func (s *CatalogService) UpdateProduct(tc *tenant.Context, productID int64, name, priceRaw string, dynamicValues map[string]string) error {
	if err := tc.Validate(); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	price, err := parsePrice(priceRaw)
	if err != nil {
		return err
	}

	columns, defs, err := s.schema(tc)
	if err != nil {
		return err
	}

	dynCols, dynVals, err := validateDynamicValues(columns, defs, dynamicValues)
	if err != nil {
		return err
	}

	setParts := []string{`name = ?`, `price = ?`}
	args := []interface{}{name, price}
	for i, col := range dynCols {
		setParts = append(setParts, fmt.Sprintf(`"%s" = ?`, col))
		args = append(args, dynVals[i])
	}
	args = append(args, productID)

	stmt := fmt.Sprintf(`UPDATE products SET %s WHERE id = ?`, strings.Join(setParts, ", "))
	result := tc.DB.Exec(stmt, args...)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
	}
	return nil
}

// DeleteProduct removes a product; the store's foreign key cascades the
// delete into its inventory entries.
func (s *CatalogService) DeleteProduct(tc *tenant.Context, productID int64) error {
	if err := tc.Validate(); err != nil {
		return err
	}

	result := tc.DB.Exec(`DELETE FROM products WHERE id = ?`, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
	}
	return nil
}

// GetProduct loads one row with all of its dynamic columns.
func (s *CatalogService) GetProduct(tc *tenant.Context, productID int64) (*models.Product, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	row := map[string]interface{}{}
	if err := tc.DB.Raw(`SELECT * FROM products WHERE id = ?`, productID).Scan(&row).Error; err != nil {
		return nil, err
	}
	if len(row) == 0 {
		return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
	}
	product := rowToProduct(row)
	return &product, nil
}

// ListProducts returns every row, dynamic columns included, ordered by
// display id.
func (s *CatalogService) ListProducts(tc *tenant.Context) ([]models.Product, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	if err := tc.DB.Raw(`SELECT * FROM products ORDER BY user_product_id`).Scan(&rows).Error; err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, rowToProduct(row))
	}
	return products, nil
}

// schema loads the physical column list and the registry definitions keyed
// by column name.
func (s *CatalogService) schema(tc *tenant.Context) ([]string, map[string]models.AttributeDefinition, error) {
	columns, err := tenant.TableColumns(tc.DB, "products")
	if err != nil {
		return nil, nil, err
	}

	list, err := s.attributes.List(tc)
	if err != nil {
		return nil, nil, err
	}

	defs := make(map[string]models.AttributeDefinition, len(list))
	for _, def := range list {
		defs[def.ColumnName] = def
	}
	return columns, defs, nil
}

// validateDynamicValues checks every dynamic column present on the entity
// against its logical type. Number columns parse or fail, with the empty
// string meaning absence of a value; select columns must match an allowed
// option when non-empty. Returns parallel column/value slices in physical
// order.
func validateDynamicValues(columns []string, defs map[string]models.AttributeDefinition, values map[string]string) ([]string, []interface{}, error) {
	var cols []string
	var vals []interface{}

	for _, col := range columns {
		if col == "id" || models.IsReservedColumn(col) {
			continue
		}

		value := strings.TrimSpace(values[col])
		colType := models.ColumnTypeText
		var options []string
		if def, ok := defs[col]; ok {
			colType = def.ColumnType
			options = def.OptionList
		}

		var stored interface{} = value
		switch colType {
		case models.ColumnTypeNumber:
			if value == "" {
				stored = nil
			} else {
				parsed, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return nil, nil, fmt.Errorf("%w: column %q", ErrInvalidNumericValue, col)
				}
				stored = parsed
			}
		case models.ColumnTypeSelect:
			if value != "" && !containsOption(options, value) {
				return nil, nil, fmt.Errorf("%w: column %q value %q", ErrInvalidOption, col, value)
			}
		}

		cols = append(cols, col)
		vals = append(vals, stored)
	}
	return cols, vals, nil
}

// parsePrice accepts anything that parses as a float. Negative prices pass
// through deliberately; the legacy system accepted them and callers depend
// on round-tripping such rows.
func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	return price, nil
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}

// rowToProduct splits a raw row into the fixed fields and the dynamic rest.
func rowToProduct(row map[string]interface{}) models.Product {
	product := models.Product{
		ID:            toInt64(row["id"]),
		UserProductID: toInt64(row["user_product_id"]),
		Name:          toString(row["name"]),
		Price:         toFloat64(row["price"]),
		Dynamic:       map[string]interface{}{},
	}
	for col, val := range row {
		if col == "id" || models.IsReservedColumn(col) {
			continue
		}
		product.Dynamic[col] = val
	}
	return product
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	return ""
}

// internal/services/export_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/stoktrack/stok-backend/internal/models"
	"github.com/stoktrack/stok-backend/internal/tenant"
)

// ExportService flattens the catalog into a spreadsheet: reserved columns
// first in fixed order, then the visible dynamic columns in schema order,
// with numeric columns coerced to numbers and empty numerics left blank.
type ExportService struct {
	attributes *AttributeService
	visibility *VisibilityService
}

func NewExportService(attributes *AttributeService, visibility *VisibilityService) *ExportService {
	return &ExportService{attributes: attributes, visibility: visibility}
}

const exportSheet = "Products"

// Columns returns the ordered export column list.
func (s *ExportService) Columns(tc *tenant.Context) ([]string, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	visibility, err := s.visibility.GetAll(tc)
	if err != nil {
		return nil, err
	}

	physical, err := tenant.TableColumns(tc.DB, "products")
	if err != nil {
		return nil, err
	}

	var columns []string
	for _, col := range models.ReservedColumns {
		if containsColumn(physical, col) {
			columns = append(columns, col)
		}
	}
	for _, col := range physical {
		if models.IsReservedColumn(col) || col == "id" {
			continue
		}
		if visible, ok := visibility[col]; !ok || visible {
			columns = append(columns, col)
		}
	}
	return columns, nil
}

// Rows returns the product data for the given columns, coerced for tabular
// output: identifier columns become integers, and an absent value in a
// number column becomes a blank cell instead of a zero.
func (s *ExportService) Rows(tc *tenant.Context, columns []string) ([][]interface{}, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	defs, err := s.attributes.List(tc)
	if err != nil {
		return nil, err
	}
	numberColumns := make(map[string]bool, len(defs))
	for _, def := range defs {
		if def.ColumnType == models.ColumnTypeNumber {
			numberColumns[def.ColumnName] = true
		}
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = `"` + col + `"`
	}

	var raw []map[string]interface{}
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY user_product_id`, strings.Join(quoted, ", "))
	if err := tc.DB.Raw(query).Scan(&raw).Error; err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(raw))
	for _, record := range raw {
		row := make([]interface{}, len(columns))
		for i, col := range columns {
			value := record[col]
			switch {
			case (col == "id" || col == "user_product_id") && value != nil:
				row[i] = toInt64(value)
			case numberColumns[col] && value == nil:
				row[i] = ""
			default:
				row[i] = value
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Workbook builds the .xlsx file for download.
func (s *ExportService) Workbook(tc *tenant.Context) (*excelize.File, error) {
	columns, err := s.Columns(tc)
	if err != nil {
		return nil, err
	}
	rows, err := s.Rows(tc, columns)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", exportSheet)

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func containsColumn(cols []string, name string) bool {
	for _, c := range cols {
		if c == name {
			return true
		}
	}
	return false
}

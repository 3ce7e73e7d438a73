// Package importer reads customer master files exported from spreadsheets.
//
// Both CSV and XLSX files use the column order
// name, gstin, state, state_code, address, mobile, email. A leading header
// row is detected by a "name" cell in the first column and skipped.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"gstbill/internal/domain"
)

const (
	colName = iota
	colGSTIN
	colState
	colStateCode
	colAddress
	colMobile
	colEmail
)

// Parse picks a reader from the file extension of filename.
func Parse(filename string, r io.Reader) ([]domain.Customer, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch domain.AllowedImportExtensions[ext] {
	case domain.ImportFormatCSV:
		return ParseCSV(r)
	case domain.ImportFormatXLSX:
		return ParseXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedImport, filepath.Ext(filename))
	}
}

// ParseCSV reads customers from CSV. Rows may have fewer than seven columns.
func ParseCSV(r io.Reader) ([]domain.Customer, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, domain.NewValidationError("file", "malformed CSV: %v", err)
	}
	return rowsToCustomers(rows)
}

// ParseXLSX reads customers from the first sheet of an Excel workbook.
func ParseXLSX(r io.Reader) ([]domain.Customer, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewValidationError("file", "unreadable workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("importer: read sheet: %w", err)
	}
	return rowsToCustomers(rows)
}

func rowsToCustomers(rows [][]string) ([]domain.Customer, error) {
	start := 0
	if len(rows) > 0 && strings.Contains(strings.ToLower(cell(rows[0], colName)), "name") {
		start = 1
	}

	customers := make([]domain.Customer, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		c := domain.Customer{
			Name:      cell(row, colName),
			GSTIN:     strings.ToUpper(cell(row, colGSTIN)),
			State:     cell(row, colState),
			StateCode: cell(row, colStateCode),
			Address:   cell(row, colAddress),
			Mobile:    cell(row, colMobile),
			Email:     cell(row, colEmail),
		}
		if c.Name == "" {
			return nil, domain.NewValidationError(fmt.Sprintf("rows[%d].name", i+1), "customer name is required")
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

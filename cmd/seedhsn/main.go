// Command seedhsn converts the GST HSN/SAC rate workbook into a SQL seed for
// the hsn table. It reads the goods sheet (first sheet) and the SAC_Master
// services sheet.
//
// Usage: go run ./cmd/seedhsn -in rates.xlsx -out db/seeds/hsn.sql
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const batchSize = 500

type hsnEntry struct {
	id          uuid.UUID
	code        string
	description string
	gstRate     decimal.Decimal
}

func main() {
	in := flag.String("in", "GST_HSN_Code_summary.xlsx", "HSN/SAC rate workbook")
	out := flag.String("out", "db/seeds/hsn.sql", "SQL seed file to write")
	flag.Parse()

	if err := run(*in, *out); err != nil {
		log.Fatal(err)
	}
}

func run(xlsxPath, outPath string) error {
	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	seen := make(map[string]bool)

	goods, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return fmt.Errorf("read HSN sheet: %w", err)
	}
	entries := parseHSNRows(goods, seen)
	log.Printf("HSN sheet: %d entries", len(entries))

	services, err := f.GetRows("SAC_Master")
	if err != nil {
		return fmt.Errorf("read SAC sheet: %w", err)
	}
	sac := parseSACRows(services, seen)
	entries = append(entries, sac...)
	log.Printf("SAC sheet: %d entries", len(sac))

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := writeSeed(file, entries); err != nil {
		return err
	}

	log.Printf("Generated %d entries (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

// parseHSNRows reads the goods sheet.
// Columns: F(5)=4-digit, H(7)=4-digit desc, I(8)=6-digit, J(9)=6-digit desc,
// K(10)=8-digit, M(12)=8-digit desc, N(13)=GST rate. Data starts at row index 5.
func parseHSNRows(rows [][]string, seen map[string]bool) []hsnEntry {
	var entries []hsnEntry
	for i := 5; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 14 {
			continue
		}

		raw := strings.TrimSuffix(strings.TrimSpace(cellVal(row, 13)), "%")
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}

		for _, col := range [][2]int{{10, 12}, {8, 9}, {5, 7}} {
			if code := strings.TrimSpace(cellVal(row, col[0])); isNumeric(code) {
				entries = addEntry(entries, seen, code, strings.TrimSpace(cellVal(row, col[1])), rate)
			}
		}
	}
	return entries
}

// parseSACRows reads the SAC_Master sheet.
// Columns: A(0)=4-digit SAC, B(1)=desc, C(2)=6-digit SAC, D(3)=desc,
// E(4)=free-text GST rate. Data starts at row index 3.
func parseSACRows(rows [][]string, seen map[string]bool) []hsnEntry {
	var entries []hsnEntry
	for i := 3; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 5 {
			continue
		}

		rates := parseSACRate(cellVal(row, 4))
		if len(rates) == 0 {
			continue
		}
		// The hsn table holds one rate per code; the lowest listed rate wins.
		rate := rates[0]
		for _, r := range rates[1:] {
			if r.LessThan(rate) {
				rate = r
			}
		}

		if code := strings.TrimSpace(cellVal(row, 2)); isNumeric(code) {
			entries = addEntry(entries, seen, code, strings.TrimSpace(cellVal(row, 3)), rate)
		}
		if code := strings.TrimSpace(cellVal(row, 0)); isNumeric(code) {
			entries = addEntry(entries, seen, code, strings.TrimSpace(cellVal(row, 1)), rate)
		}
	}
	return entries
}

// ratePattern matches a number followed by "%".
var ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)

// parseSACRate extracts GST rate(s) from free-text SAC rate strings.
// Examples:
//
//	"18%"                                   → [18]
//	"Exempt"                                → [0]
//	"12%-18%"                               → [12, 18]
//	"1% (without ITC) or 5% (without ITC)"  → [1, 5]
func parseSACRate(s string) []decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	switch strings.ToLower(s) {
	case "exempt", "nil":
		return []decimal.Decimal{decimal.Zero}
	}

	var rates []decimal.Decimal
	for _, m := range ratePattern.FindAllStringSubmatch(s, -1) {
		rate, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		dup := false
		for _, r := range rates {
			if r.Equal(rate) {
				dup = true
				break
			}
		}
		if !dup {
			rates = append(rates, rate)
		}
	}
	return rates
}

func addEntry(entries []hsnEntry, seen map[string]bool, code, description string, rate decimal.Decimal) []hsnEntry {
	if seen[code] {
		return entries
	}
	seen[code] = true
	return append(entries, hsnEntry{id: uuid.New(), code: code, description: description, gstRate: rate})
}

func writeSeed(w io.Writer, entries []hsnEntry) error {
	header := fmt.Sprintf("-- HSN/SAC rate seed generated from Excel.\n-- %d entries in batches of %d.\nBEGIN;\n\n",
		len(entries), batchSize)
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < len(entries); i += batchSize {
		end := min(i+batchSize, len(entries))
		if err := writeBatch(w, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	if _, err := io.WriteString(w, "\nCOMMIT;\n"); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	return nil
}

func writeBatch(w io.Writer, batch []hsnEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO hsn (id, hsn_code, description, gst_rate_percent) VALUES\n")
	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', %s)",
			e.id, escapeSQL(e.code), escapeSQL(e.description), e.gstRate.StringFixed(2))
	}
	b.WriteString("\nON CONFLICT (hsn_code) DO NOTHING;\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

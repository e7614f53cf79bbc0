package model

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Template column headers, in order. The tags header spells out the
// separator because the file is edited by hand in a spreadsheet.
const (
	ColProductName = "ProductName"
	ColCategory    = "Category"
	ColPrice       = "Price"
	ColStock       = "Stock"
	ColTags        = "Tags (Pisahkan dengan |)"
)

// TemplateCSV is the downloadable starter file, header plus one
// example row.
const TemplateCSV = ColProductName + "," + ColCategory + "," + ColPrice + "," + ColStock + ",\"" + ColTags + "\"\n" +
	"Contoh Produk A,Elektronik,50000,20,Premium|Diskon\n"

// TemplateFilename is the suggested download name for the template.
const TemplateFilename = "template_produk_smart.csv"

// MaxRows caps a single upload; larger files should be split.
const MaxRows = 1000

var (
	ErrEmptyFile   = errors.New("file contains no data rows")
	ErrTooManyRows = fmt.Errorf("file exceeds the %d row limit", MaxRows)
	ErrMissingCols = errors.New("missing required columns")
)

// ParseCSV reads an uploaded template file into untyped rows. Columns
// are located by header name, case-insensitively, so reordered or
// extra columns are tolerated. Fully blank lines are skipped but still
// advance the row counter so log entries match what the user sees in
// their spreadsheet.
func ParseCSV(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var rows []ImportRow
	for i := 0; ; i++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", i+2, err)
		}
		if isBlank(record) {
			continue
		}

		rows = append(rows, ImportRow{
			Row:         i + 2,
			ProductName: strings.TrimSpace(field(record, cols.name)),
			Category:    strings.TrimSpace(field(record, cols.category)),
			Price:       strings.TrimSpace(field(record, cols.price)),
			Stock:       strings.TrimSpace(field(record, cols.stock)),
			Tags:        strings.TrimSpace(field(record, cols.tags)),
		})
		if len(rows) > MaxRows {
			return nil, ErrTooManyRows
		}
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

type columnIndexes struct {
	name     int
	category int
	price    int
	stock    int
	tags     int
}

func mapColumns(header []string) (columnIndexes, error) {
	cols := columnIndexes{name: -1, category: -1, price: -1, stock: -1, tags: -1}
	for i, h := range header {
		switch key := strings.ToLower(strings.TrimSpace(h)); {
		case key == strings.ToLower(ColProductName):
			cols.name = i
		case key == strings.ToLower(ColCategory):
			cols.category = i
		case key == strings.ToLower(ColPrice):
			cols.price = i
		case key == strings.ToLower(ColStock):
			cols.stock = i
		case strings.HasPrefix(key, "tags"):
			// Tolerate header variants as long as the column is named Tags.
			cols.tags = i
		}
	}

	var missing []string
	if cols.name == -1 {
		missing = append(missing, ColProductName)
	}
	if cols.category == -1 {
		missing = append(missing, ColCategory)
	}
	if cols.price == -1 {
		missing = append(missing, ColPrice)
	}
	if cols.stock == -1 {
		missing = append(missing, ColStock)
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("%w: %s", ErrMissingCols, strings.Join(missing, ", "))
	}
	return cols, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

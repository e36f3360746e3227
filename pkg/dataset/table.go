package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/colgraph/pkg/errors"
)

// ReadCSV decodes a tabular dataset. The first row names the series (its
// first cell is ignored), every following row starts with a category name,
// and empty cells are absent values.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode csv")
	}
	return fromRows(rows)
}

// ReadXLSX decodes a tabular dataset from a workbook, using the same layout
// as [ReadCSV]. An empty sheet name selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "open workbook")
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read sheet %q", sheet)
	}
	return fromRows(rows)
}

// fromRows builds a dataset from a header row plus one row per category.
// Short rows are padded with absent values.
func fromRows(rows [][]string) (*Dataset, error) {
	if len(rows) == 0 {
		return &Dataset{}, nil
	}

	header := rows[0]
	if len(header) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "header row needs a category column and at least one series")
	}
	ds := &Dataset{Series: make([]Series, len(header)-1)}
	for i, name := range header[1:] {
		ds.Series[i].Name = strings.TrimSpace(name)
	}

	for n, row := range rows[1:] {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		if len(row) > len(header) {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "row %d has %d cells, header has %d", n+2, len(row), len(header))
		}
		cat := strings.TrimSpace(row[0])
		for i := range ds.Series {
			e := Entry{Category: cat}
			if cell := cellAt(row, i+1); cell != "" {
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "row %d series %q", n+2, ds.Series[i].Name)
				}
				e.Value = &v
			}
			ds.Series[i].Entries = append(ds.Series[i].Entries, e)
		}
	}
	return ds, ds.Validate()
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

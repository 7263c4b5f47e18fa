package exporter

import (
	"encoding/csv"
	"io"

	"fitctl/pkg/catalog"

	"github.com/tealeg/xlsx/v3"
)

const matrixCorner = `Spec\Course`

func matrixRecords(m catalog.Matrix) [][]string {
	header := append([]string{matrixCorner}, m.Courses...)
	records := [][]string{header}

	for i, spec := range m.Specs {
		row := []string{spec}
		for _, required := range m.Cells[i] {
			if required {
				row = append(row, "1")
			} else {
				row = append(row, "0")
			}
		}
		records = append(records, row)
	}
	return records
}

// WriteMatrixCSV writes the requirement matrix as CSV
func WriteMatrixCSV(m catalog.Matrix, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(matrixRecords(m)); err != nil {
		return err
	}
	return cw.Error()
}

// WriteMatrixXLSX writes the requirement matrix to a single-sheet workbook
func WriteMatrixXLSX(m catalog.Matrix, path string) error {
	f := xlsx.NewFile()
	sh, err := f.AddSheet("Matrix")
	if err != nil {
		return err
	}

	for i, record := range matrixRecords(m) {
		row := sh.AddRow()
		for j, value := range record {
			cell := row.AddCell()
			if i == 0 || j == 0 {
				cell.SetString(value)
			} else if value == "1" {
				cell.SetInt(1)
			} else {
				cell.SetInt(0)
			}
		}
	}

	return f.Save(path)
}

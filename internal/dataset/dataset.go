// Package dataset reads points and distance matrices from CSV.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadPoints reads one point per CSV record. All records must have the same
// number of fields. Lines starting with '#' are skipped.
func ReadPoints(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var points [][]float64
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		row := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d field %d: %w", line, j+1, err)
			}
			row[j] = v
		}
		points = append(points, row)
	}
	return points, nil
}

// ReadMatrix reads a square distance matrix, one row per record, and returns
// it flattened in row-major order together with its size.
func ReadMatrix(r io.Reader) ([]float64, int, error) {
	rows, err := ReadPoints(r)
	if err != nil {
		return nil, 0, err
	}
	n := len(rows)
	flat := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, 0, fmt.Errorf("matrix row %d has %d columns, want %d", i, len(row), n)
		}
		flat = append(flat, row...)
	}
	return flat, n, nil
}

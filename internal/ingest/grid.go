package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	ErrNoSheets        = errors.New("workbook has no sheets")
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// MergeRange is a merged cell block, 0-indexed, inclusive bounds.
// Value is the text of the top-left cell of the block.
type MergeRange struct {
	StartRow, StartCol int
	EndRow, EndCol     int
	Value              string
}

// Grid is the rectangular cell view of the first sheet of an upload.
// Rows may be ragged; Cell treats everything outside as blank.
type Grid struct {
	Rows   [][]string
	Merges []MergeRange
}

func (g *Grid) Cell(r, c int) string {
	if r >= 0 && r < len(g.Rows) && c >= 0 && c < len(g.Rows[r]) {
		if v := strings.TrimSpace(g.Rows[r][c]); v != "" {
			return v
		}
	}
	// Blank cells under a merged block read as the block's top-left value.
	for _, m := range g.Merges {
		if r >= m.StartRow && r <= m.EndRow && c >= m.StartCol && c <= m.EndCol {
			return strings.TrimSpace(m.Value)
		}
	}
	return ""
}

// Width returns the widest row, so header building covers every column.
func (g *Grid) Width() int {
	w := 0
	for _, row := range g.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	for _, m := range g.Merges {
		if m.EndCol+1 > w {
			w = m.EndCol + 1
		}
	}
	return w
}

// ParseGrid reads raw spreadsheet bytes into a Grid. The extension of the
// uploaded filename selects the decoder: .xlsx, .xls or .csv.
func ParseGrid(data []byte, filename string) (*Grid, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return parseXLSX(data)
	case ".xls":
		return parseXLS(data)
	case ".csv":
		return parseCSV(data)
	}
	return nil, ErrUnsupportedFile
}

func parseXLSX(data []byte) (*Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	sheet := sheets[0]
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	grid := &Grid{Rows: rows}
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return grid, nil
	}
	for _, m := range merges {
		sc, sr, err1 := excelize.CellNameToCoordinates(m.GetStartAxis())
		ec, er, err2 := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err1 != nil || err2 != nil {
			continue
		}
		grid.Merges = append(grid.Merges, MergeRange{
			StartRow: sr - 1, StartCol: sc - 1,
			EndRow: er - 1, EndCol: ec - 1,
			Value: m.GetCellValue(),
		})
	}
	return grid, nil
}

func parseXLS(data []byte) (*Grid, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, ErrNoSheets
	}
	rows := wb.ReadAllCells(maxXLSRows)
	return &Grid{Rows: rows}, nil
}

const maxXLSRows = 65536

func parseCSV(data []byte) (*Grid, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return &Grid{Rows: rows}, nil
}

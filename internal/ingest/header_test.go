package ingest

import (
	"reflect"
	"testing"
)

func TestLocateHeaderSingleRow(t *testing.T) {
	tests := []struct {
		name      string
		rows      [][]string
		wantRow   int
		wantStart int
	}{
		{
			name: "header on first row",
			rows: [][]string{
				{"No", "Nama Lengkap", "Keperluan"},
				{"1", "Budi Santoso", "Permohonan sertifikat"},
			},
			wantRow:   0,
			wantStart: 1,
		},
		{
			name: "header below title rows",
			rows: [][]string{
				{"REKAP PENGADUAN KANTOR"},
				{"Periode Januari 2025"},
				{"No.", "Nama Pengadu", "Tanggal"},
				{"1", "Siti Aminah", "2025-01-10"},
			},
			wantRow:   2,
			wantStart: 3,
		},
		{
			name: "name and date without sequence",
			rows: [][]string{
				{"Nama", "Waktu Kedatangan", "Alamat"},
				{"Budi", "2025-01-10", "Jl. Melati 5"},
			},
			wantRow:   0,
			wantStart: 1,
		},
		{
			name: "nothing matches falls back to row 0",
			rows: [][]string{
				{"kolom1", "kolom2"},
				{"a", "b"},
			},
			wantRow:   0,
			wantStart: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Grid{Rows: tt.rows}
			got := LocateHeader(g, DefaultVocabulary(), 10)
			if got.Row != tt.wantRow {
				t.Errorf("Row = %d, want %d", got.Row, tt.wantRow)
			}
			if got.DataStart != tt.wantStart {
				t.Errorf("DataStart = %d, want %d", got.DataStart, tt.wantStart)
			}
			if got.MultiRow {
				t.Errorf("MultiRow = true, want false")
			}
		})
	}
}

func TestLocateHeaderEmptyGrid(t *testing.T) {
	got := LocateHeader(&Grid{}, DefaultVocabulary(), 10)
	if got.Row != 0 || got.DataStart != 1 {
		t.Errorf("empty grid: got row=%d start=%d, want 0/1", got.Row, got.DataStart)
	}
	if n := len(Records(&Grid{}, got)); n != 0 {
		t.Errorf("empty grid produced %d records", n)
	}
}

func TestLocateHeaderTwoRow(t *testing.T) {
	// Parent row carries "Status" merged over the two flag columns; the
	// child row names them Selesai/Proses.
	g := &Grid{
		Rows: [][]string{
			{"No", "Nama Lengkap", "Keperluan", "Status", ""},
			{"", "", "", "Selesai", "Proses"},
			{"1", "Budi Santoso", "Permohonan sertifikat", "true", ""},
		},
		Merges: []MergeRange{
			{StartRow: 0, StartCol: 3, EndRow: 0, EndCol: 4, Value: "Status"},
		},
	}
	got := LocateHeader(g, DefaultVocabulary(), 10)
	if !got.MultiRow {
		t.Fatal("expected two-row header")
	}
	if got.DataStart != 2 {
		t.Errorf("DataStart = %d, want 2", got.DataStart)
	}
	want := []string{"No", "Nama Lengkap", "Keperluan", "Status Selesai", "Status Proses"}
	if !reflect.DeepEqual(got.Columns, want) {
		t.Errorf("Columns = %v, want %v", got.Columns, want)
	}
}

func TestSecondRowWithDataIsNotHeader(t *testing.T) {
	// The row under the header holds a phone number and long free text, so
	// it is data even though one cell says "selesai".
	g := &Grid{Rows: [][]string{
		{"No", "Nama Lengkap", "Keperluan", "Status"},
		{"1", "Budi Santoso", "Permohonan sertifikat tanah", "selesai"},
	}}
	got := LocateHeader(g, DefaultVocabulary(), 10)
	if got.MultiRow {
		t.Fatal("row with data cells must not be treated as a child header")
	}
	if got.DataStart != 1 {
		t.Errorf("DataStart = %d, want 1", got.DataStart)
	}
}

func TestRecordsKeepColumnOrderAndValues(t *testing.T) {
	g := &Grid{Rows: [][]string{
		{"No", "Nama Lengkap"},
		{"1", "Budi"},
		{"2"},
	}}
	info := LocateHeader(g, DefaultVocabulary(), 10)
	recs := Records(g, info)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if got := recs[0].Get("Nama Lengkap"); got != "Budi" {
		t.Errorf("value = %q, want Budi", got)
	}
	// Ragged row reads as blank, not a panic.
	if got := recs[1].Get("Nama Lengkap"); got != "" {
		t.Errorf("ragged value = %q, want empty", got)
	}
	if !reflect.DeepEqual(recs[0].Keys(), []string{"No", "Nama Lengkap"}) {
		t.Errorf("keys = %v", recs[0].Keys())
	}
}

func TestGridCellMergeResolution(t *testing.T) {
	g := &Grid{
		Rows: [][]string{
			{"Status", ""},
		},
		Merges: []MergeRange{
			{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 1, Value: "Status"},
		},
	}
	if got := g.Cell(0, 1); got != "Status" {
		t.Errorf("merged cell = %q, want Status", got)
	}
	if got := g.Cell(5, 5); got != "" {
		t.Errorf("out of range cell = %q, want empty", got)
	}
}

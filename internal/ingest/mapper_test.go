package ingest

import (
	"testing"
	"time"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"No. HP", "no_hp"},
		{"no_hp", "no_hp"},
		{"NO HP", "no_hp"},
		{"  Nama   Lengkap  ", "nama_lengkap"},
		{"Waktu Kedatangan:", "waktu_kedatangan"},
		{"Status (Selesai)", "status_selesai"},
		{"___", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func record(pairs ...string) *Record {
	rec := &Record{vals: make(map[string]string)}
	for i := 0; i+1 < len(pairs); i += 2 {
		rec.Set(pairs[i], pairs[i+1])
	}
	return rec
}

func TestMapRowAliases(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	rec := record(
		"No", "1",
		"Nama Pengadu", "Budi Santoso",
		"No HP", "0812 3456 7890",
		"Ringkasan Pengaduan", "Sertifikat belum terbit",
		"Keterangan", "datang pagi",
		"Tanggal", "2025-05-20",
	)
	d := MapRow(rec, DefaultAliases(), now)

	if d.NamaLengkap != "Budi Santoso" {
		t.Errorf("NamaLengkap = %q", d.NamaLengkap)
	}
	if d.NomorTelepon != "0812 3456 7890" {
		t.Errorf("NomorTelepon = %q", d.NomorTelepon)
	}
	if d.Keperluan != "Sertifikat belum terbit" {
		t.Errorf("Keperluan = %q", d.Keperluan)
	}
	if d.Catatan != "datang pagi" {
		t.Errorf("Catatan = %q", d.Catatan)
	}
	if !d.WaktuKedatangan.Equal(time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("WaktuKedatangan = %v", d.WaktuKedatangan)
	}
	if d.Status != StatusPending {
		t.Errorf("Status = %q, want Pending", d.Status)
	}
}

func TestMapRowMissingDateDefaultsToNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	d := MapRow(record("Nama", "Budi Santoso"), DefaultAliases(), now)
	if !d.WaktuKedatangan.Equal(now) {
		t.Errorf("WaktuKedatangan = %v, want ingestion time", d.WaktuKedatangan)
	}
	if d.ArrivalText != "" {
		t.Errorf("ArrivalText = %q, want empty", d.ArrivalText)
	}
}

func TestResolveStatusPriority(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		rec  *Record
		want string
	}{
		{
			name: "selesai flag wins over proses flag",
			rec:  record("Nama", "Budi", "Status Selesai", "true", "Status Proses", "1"),
			want: StatusSelesai,
		},
		{
			name: "proses flag beats text status",
			rec:  record("Nama", "Budi", "Proses", "ya", "Status", "pending"),
			want: StatusProses,
		},
		{
			name: "falsy flags fall through to text status",
			rec:  record("Nama", "Budi", "Status Selesai", "", "Status", "diproses"),
			want: StatusProses,
		},
		{
			name: "text synonyms",
			rec:  record("Nama", "Budi", "Status", "Done"),
			want: StatusSelesai,
		},
		{
			name: "on progress synonym",
			rec:  record("Nama", "Budi", "Status", "On Progress"),
			want: StatusProses,
		},
		{
			name: "unknown text defaults to pending",
			rec:  record("Nama", "Budi", "Status", "menunggu berkas"),
			want: StatusPending,
		},
		{
			name: "no status at all",
			rec:  record("Nama", "Budi"),
			want: StatusPending,
		},
		{
			name: "checkmark is truthy",
			rec:  record("Nama", "Budi", "Selesai", "✓"),
			want: StatusSelesai,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := MapRow(tt.rec, DefaultAliases(), now)
			if d.Status != tt.want {
				t.Errorf("Status = %q, want %q", d.Status, tt.want)
			}
		})
	}
}

func TestParseArrival(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want string
	}{
		{"2025-05-20", true, "2025-05-20"},
		{"20/05/2025", true, "2025-05-20"},
		{"20-05-2025", true, "2025-05-20"},
		{"2 Jan 2006", true, "2006-01-02"},
		{"2025-05-20 14:30", true, "2025-05-20"},
		{"", false, ""},
		{"kemarin sore", false, ""},
	}
	for _, tt := range tests {
		got, ok := ParseArrival(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseArrival(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != tt.want {
			t.Errorf("ParseArrival(%q) = %v, want %s", tt.in, got, tt.want)
		}
	}
}

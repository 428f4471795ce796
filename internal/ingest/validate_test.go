package ingest

import "testing"

func TestIsEmptyRecord(t *testing.T) {
	if !IsEmptyRecord(record("Nama", "", "Alamat", "   ", "No", "nan")) {
		t.Error("blank/nan row should be empty")
	}
	if IsEmptyRecord(record("Nama", "Budi")) {
		t.Error("row with a value is not empty")
	}
}

func TestHasEssentialData(t *testing.T) {
	tests := []struct {
		name string
		d    Draft
		want bool
	}{
		{
			name: "name with phone",
			d:    Draft{NamaLengkap: "Budi Santoso", NomorTelepon: "0812345678"},
			want: true,
		},
		{
			name: "placeholder name rejected regardless of other fields",
			d:    Draft{NamaLengkap: "x", NomorTelepon: "0812345678", Keperluan: "Permohonan sertifikat"},
			want: false,
		},
		{
			name: "dash name rejected",
			d:    Draft{NamaLengkap: "-", Keperluan: "Permohonan sertifikat"},
			want: false,
		},
		{
			name: "two-char name rejected",
			d:    Draft{NamaLengkap: "Bu", NomorTelepon: "0812345678"},
			want: false,
		},
		{
			name: "name alone is not enough",
			d:    Draft{NamaLengkap: "Budi Santoso"},
			want: false,
		},
		{
			name: "dash phone does not count as signal",
			d:    Draft{NamaLengkap: "Budi Santoso", NomorTelepon: "-"},
			want: false,
		},
		{
			name: "long purpose counts",
			d:    Draft{NamaLengkap: "Budi Santoso", Keperluan: "Permohonan sertifikat"},
			want: true,
		},
		{
			name: "short purpose does not count",
			d:    Draft{NamaLengkap: "Budi Santoso", Keperluan: "cek"},
			want: false,
		},
		{
			name: "address longer than three chars counts",
			d:    Draft{NamaLengkap: "Budi Santoso", Alamat: "Jl. Melati 5"},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasEssentialData(tt.d); got != tt.want {
				t.Errorf("HasEssentialData = %v, want %v", got, tt.want)
			}
		})
	}
}

package ingest

import (
	"context"
	"errors"
	"time"
)

// Complaint status labels as stored. "Diproses", "on progress" and the like
// are accepted on input and folded into StatusProses.
const (
	StatusPending = "Pending"
	StatusProses  = "Proses"
	StatusSelesai = "Selesai"
)

var (
	ErrNotFound = errors.New("complaint not found")
	// ErrCodeConflict is returned by Insert when the store's unit_code
	// uniqueness constraint fires; the caller regenerates and retries.
	ErrCodeConflict = errors.New("unit code already taken")
)

// Complaint is the persisted record.
type Complaint struct {
	ID              int64     `json:"id"`
	UnitCode        string    `json:"unit_code"`
	NamaLengkap     string    `json:"nama_lengkap"`
	NomorTelepon    string    `json:"nomor_telepon"`
	NomorBerkas     string    `json:"nomor_berkas"`
	Alamat          string    `json:"alamat"`
	Keperluan       string    `json:"keperluan"`
	WaktuKedatangan time.Time `json:"waktu_kedatangan"`
	Catatan         string    `json:"catatan"`
	Petugas         string    `json:"petugas"`
	Status          string    `json:"status"`
	Email           string    `json:"email"`
	NIK             string    `json:"nik"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Draft is the in-memory candidate built from one spreadsheet row. It has no
// identity yet; ArrivalText keeps the raw cell so fingerprinting can tell an
// unparseable date from an absent one.
type Draft struct {
	NamaLengkap     string
	NomorTelepon    string
	NomorBerkas     string
	Alamat          string
	Keperluan       string
	WaktuKedatangan time.Time
	ArrivalText     string
	Catatan         string
	Petugas         string
	Status          string
	Email           string
	NIK             string
}

// ComplaintStore is the record-store surface the ingestion core consumes.
// Lookup arguments arrive pre-normalized (see fingerprint.go); the date is a
// calendar date in YYYY-MM-DD form.
type ComplaintStore interface {
	FindByUnitCode(ctx context.Context, code string) (*Complaint, error)
	// FindByNamePhoneDate matches normalized name + calendar date + phone.
	// Two blank phones also match.
	FindByNamePhoneDate(ctx context.Context, name, date, phone string) (*Complaint, error)
	// FindByNameDatePurposePrefix is the fallback for drafts without a
	// phone: case-insensitive match on the first 50 chars of the purpose.
	FindByNameDatePurposePrefix(ctx context.Context, name, date, prefix string) (*Complaint, error)
	ExistsUnitCode(ctx context.Context, code string) (bool, error)
	Insert(ctx context.Context, c *Complaint) error
	Update(ctx context.Context, unitCode string, d Draft) error
}

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"PengaduanKPU/internal/ingest"
)

// PGStore is the Postgres-backed complaint store. It satisfies
// ingest.ComplaintStore; the extra listing/statistics methods back the HTTP
// layer directly.
type PGStore struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

const complaintColumns = `id, unit_code, nama_lengkap, nomor_telepon, nomor_berkas,
	alamat, keperluan, waktu_kedatangan, catatan, petugas, status, email, nik,
	created_at, updated_at`

func scanComplaint(row pgx.Row) (*ingest.Complaint, error) {
	var c ingest.Complaint
	err := row.Scan(
		&c.ID, &c.UnitCode, &c.NamaLengkap, &c.NomorTelepon, &c.NomorBerkas,
		&c.Alamat, &c.Keperluan, &c.WaktuKedatangan, &c.Catatan, &c.Petugas,
		&c.Status, &c.Email, &c.NIK, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ingest.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PGStore) FindByID(ctx context.Context, id int64) (*ingest.Complaint, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE id = $1`, id)
	return scanComplaint(row)
}

func (s *PGStore) FindByUnitCode(ctx context.Context, code string) (*ingest.Complaint, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE unit_code = $1`, code)
	return scanComplaint(row)
}

// normalizedPhoneSQL mirrors ingest.NormalizePhone: spaces/dashes/slashes
// stripped, one leading zero dropped, first 10 digits.
const normalizedPhoneSQL = `LEFT(regexp_replace(
	replace(replace(replace(COALESCE(nomor_telepon, ''), ' ', ''), '-', ''), '/', ''),
	'^0', ''), 10)`

func (s *PGStore) FindByNamePhoneDate(ctx context.Context, name, date, phone string) (*ingest.Complaint, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+complaintColumns+`
		FROM complaints
		WHERE LOWER(TRIM(nama_lengkap)) = $1
		  AND waktu_kedatangan::date = $2::date
		  AND (
		        ($3 <> '' AND `+normalizedPhoneSQL+` = $3)
		     OR ($3 = '' AND COALESCE(nomor_telepon, '') = '')
		  )
		LIMIT 1`, name, date, phone)
	return scanComplaint(row)
}

func (s *PGStore) FindByNameDatePurposePrefix(ctx context.Context, name, date, prefix string) (*ingest.Complaint, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+complaintColumns+`
		FROM complaints
		WHERE LOWER(TRIM(nama_lengkap)) = $1
		  AND waktu_kedatangan::date = $2::date
		  AND LOWER(LEFT(keperluan, 50)) = LEFT($3, 50)
		LIMIT 1`, name, date, strings.ToLower(prefix))
	return scanComplaint(row)
}

func (s *PGStore) ExistsUnitCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM complaints WHERE unit_code = $1)`, code).Scan(&exists)
	return exists, err
}

func (s *PGStore) Insert(ctx context.Context, c *ingest.Complaint) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO complaints (unit_code, nama_lengkap, nomor_telepon, nomor_berkas,
			alamat, keperluan, waktu_kedatangan, catatan, petugas, status, email, nik)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id, created_at, updated_at`,
		c.UnitCode, c.NamaLengkap, c.NomorTelepon, c.NomorBerkas,
		c.Alamat, c.Keperluan, c.WaktuKedatangan, c.Catatan, c.Petugas,
		c.Status, c.Email, c.NIK,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "unit_code") {
		return ingest.ErrCodeConflict
	}
	return err
}

// Update refreshes every field of the record except unit_code, which is
// immutable once assigned.
func (s *PGStore) Update(ctx context.Context, unitCode string, d ingest.Draft) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE complaints SET
			nama_lengkap = $1, nomor_telepon = $2, nomor_berkas = $3,
			alamat = $4, keperluan = $5, waktu_kedatangan = $6,
			catatan = $7, petugas = $8, status = $9, email = $10, nik = $11,
			updated_at = now()
		WHERE unit_code = $12`,
		d.NamaLengkap, d.NomorTelepon, d.NomorBerkas,
		d.Alamat, d.Keperluan, d.WaktuKedatangan,
		d.Catatan, d.Petugas, d.Status, d.Email, d.NIK, unitCode)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ingest.ErrNotFound
	}
	return nil
}

// List returns one admin page of complaints with an optional LIKE search
// over nama/unit_code/keperluan/petugas and an optional status filter.
func (s *PGStore) List(ctx context.Context, page, limit int, search, status string) ([]ingest.Complaint, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	where := "WHERE 1=1"
	args := []interface{}{}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := fmt.Sprintf("$%d", len(args))
		where += fmt.Sprintf(" AND (nama_lengkap ILIKE %s OR unit_code ILIKE %s OR keperluan ILIKE %s OR petugas ILIKE %s)", n, n, n, n)
	}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM complaints "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf("SELECT "+complaintColumns+" FROM complaints %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]ingest.Complaint, 0)
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *c)
	}
	return out, total, rows.Err()
}

// Statistics counts complaints per status.
type Statistics struct {
	Total   int `json:"total"`
	Selesai int `json:"selesai"`
	Proses  int `json:"proses"`
	Pending int `json:"pending"`
}

func (s *PGStore) Statistics(ctx context.Context) (*Statistics, error) {
	var st Statistics
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'Selesai'),
		       COUNT(*) FILTER (WHERE status = 'Proses'),
		       COUNT(*) FILTER (WHERE status = 'Pending')
		FROM complaints`).Scan(&st.Total, &st.Selesai, &st.Proses, &st.Pending)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// UpdateByID backs the admin edit endpoint; unit_code stays untouched.
func (s *PGStore) UpdateByID(ctx context.Context, id int64, d ingest.Draft) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE complaints SET
			nama_lengkap = $1, nomor_telepon = $2, nomor_berkas = $3,
			alamat = $4, keperluan = $5, waktu_kedatangan = $6,
			catatan = $7, petugas = $8, status = $9, email = $10, nik = $11,
			updated_at = now()
		WHERE id = $12`,
		d.NamaLengkap, d.NomorTelepon, d.NomorBerkas,
		d.Alamat, d.Keperluan, d.WaktuKedatangan,
		d.Catatan, d.Petugas, d.Status, d.Email, d.NIK, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ingest.ErrNotFound
	}
	return nil
}

func (s *PGStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM complaints WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ingest.ErrNotFound
	}
	return nil
}

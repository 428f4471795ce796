package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"PengaduanKPU/internal/config"
)

// Summary is the batch result returned to the HTTP layer. Field names are
// part of the upload response contract.
type Summary struct {
	Total              int          `json:"total"`
	ValidRows          int          `json:"validRows"`
	EmptyRowsSkipped   int          `json:"emptyRowsSkipped"`
	InvalidRowsSkipped int          `json:"invalidRowsSkipped"`
	DuplicatesInBatch  int          `json:"duplicatesInBatch"`
	Inserted           int          `json:"inserted"`
	Updated            int          `json:"updated"`
	Errors             int          `json:"errors"`
	ErrorDetails       []RowError   `json:"errorDetails,omitempty"`
	SkippedDetails     []SkippedRow `json:"skippedDetails,omitempty"`
}

// RowError records a per-row failure with the row's 1-based position in the
// original file.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type SkippedRow struct {
	Row    int               `json:"row"`
	Reason string            `json:"reason"`
	Data   map[string]string `json:"data,omitempty"`
}

// Pipeline drives one upload batch through header location, validation,
// mapping and upsert. Rows are processed strictly in order, one at a time;
// the fingerprint set lives only for the duration of one Ingest call.
type Pipeline struct {
	Store      ComplaintStore
	Codes      *CodeGenerator
	Vocab      Vocabulary
	Aliases    Aliases
	MaxDetails int
	Now        func() time.Time
}

func NewPipeline(store ComplaintStore) *Pipeline {
	return &Pipeline{
		Store: store,
		Codes: NewCodeGenerator(config.UnitCodePrefix, config.UnitCodeAlphabet,
			config.UnitCodeLength, config.UnitCodeMaxAttempts),
		Vocab:      DefaultVocabulary(),
		Aliases:    DefaultAliases(),
		MaxDetails: config.MaxDetailEntries,
		Now:        time.Now,
	}
}

// insertRetries bounds regeneration after a unit_code constraint conflict
// (two concurrent uploads can both see a candidate as free).
const insertRetries = 3

// Ingest processes raw spreadsheet bytes into the store and reports the
// batch summary. Unreadable input is the only fatal error; everything
// row-level is recovered, counted and carried in the summary.
func (p *Pipeline) Ingest(ctx context.Context, data []byte, filename string) (*Summary, error) {
	grid, err := ParseGrid(data, filename)
	if err != nil {
		return nil, err
	}

	header := LocateHeader(grid, p.Vocab, config.HeaderScanLimit)
	records := Records(grid, header)

	sum := &Summary{Total: len(records)}
	seen := make(map[string]struct{}, len(records))
	now := p.Now()

	for idx, rec := range records {
		rowNum := header.DataStart + idx + 1 // 1-based position in the file

		if IsEmptyRecord(rec) {
			sum.EmptyRowsSkipped++
			sum.skip(p.MaxDetails, SkippedRow{Row: rowNum, Reason: "Empty row"})
			continue
		}

		draft := MapRow(rec, p.Aliases, now)
		if !HasEssentialData(draft) {
			sum.InvalidRowsSkipped++
			sum.skip(p.MaxDetails, SkippedRow{
				Row:    rowNum,
				Reason: "Missing essential data",
				Data: map[string]string{
					"nama":      draft.NamaLengkap,
					"telp":      draft.NomorTelepon,
					"keperluan": draft.Keperluan,
				},
			})
			continue
		}
		sum.ValidRows++

		fp := Fingerprint(draft)
		if _, dup := seen[fp]; dup {
			sum.DuplicatesInBatch++
			continue
		}
		seen[fp] = struct{}{}

		updated, err := p.upsert(ctx, draft)
		if err != nil {
			sum.Errors++
			if len(sum.ErrorDetails) < p.MaxDetails {
				sum.ErrorDetails = append(sum.ErrorDetails, RowError{Row: rowNum, Error: err.Error()})
			}
			continue
		}
		if updated {
			sum.Updated++
		} else {
			sum.Inserted++
		}
	}
	return sum, nil
}

func (s *Summary) skip(max int, row SkippedRow) {
	if len(s.SkippedDetails) < max {
		s.SkippedDetails = append(s.SkippedDetails, row)
	}
}

// upsert resolves one draft against the store: update the matching record
// in place (unit code preserved) or insert a new one under a fresh code.
// Reports true when an existing record was updated.
func (p *Pipeline) upsert(ctx context.Context, d Draft) (bool, error) {
	name := NormalizeName(d.NamaLengkap)
	phone := NormalizePhone(d.NomorTelepon)
	date := FingerprintDate(d)

	// An unparseable arrival date cannot disambiguate records, so the store
	// lookups are skipped and the row inserts as new.
	var existing *Complaint
	var err error
	if date != "" {
		existing, err = p.Store.FindByNamePhoneDate(ctx, name, date, phone)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return false, fmt.Errorf("lookup: %w", err)
		}

		// Phone numbers are the strongest natural key; when the row has
		// none, fall back to the purpose text prefix.
		if existing == nil && phone == "" {
			// The prefix is counted in runes, not bytes, matching the store's
			// LEFT(); a byte cut could split a multibyte character and hand
			// the store invalid UTF-8.
			prefix := strings.ToLower(d.Keperluan)
			if r := []rune(prefix); len(r) > 50 {
				prefix = string(r[:50])
			}
			existing, err = p.Store.FindByNameDatePurposePrefix(ctx, name, date, prefix)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return false, fmt.Errorf("fallback lookup: %w", err)
			}
		}
	}

	if existing != nil {
		if err := p.Store.Update(ctx, existing.UnitCode, d); err != nil {
			return false, fmt.Errorf("update %s: %w", existing.UnitCode, err)
		}
		return true, nil
	}

	for attempt := 0; ; attempt++ {
		code, err := p.Codes.Generate(ctx, p.Store)
		if err != nil {
			return false, err
		}
		err = p.Store.Insert(ctx, &Complaint{
			UnitCode:        code,
			NamaLengkap:     strings.TrimSpace(d.NamaLengkap),
			NomorTelepon:    d.NomorTelepon,
			NomorBerkas:     d.NomorBerkas,
			Alamat:          d.Alamat,
			Keperluan:       d.Keperluan,
			WaktuKedatangan: d.WaktuKedatangan,
			Catatan:         d.Catatan,
			Petugas:         d.Petugas,
			Status:          d.Status,
			Email:           d.Email,
			NIK:             d.NIK,
		})
		if errors.Is(err, ErrCodeConflict) && attempt < insertRetries {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("insert: %w", err)
		}
		return false, nil
	}
}

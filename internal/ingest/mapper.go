package ingest

import (
	"strings"
	"time"
	"unicode"
)

// Aliases lists, per canonical field, the normalized header keys to try in
// order. First non-empty value wins.
type Aliases struct {
	NamaLengkap     []string
	NomorTelepon    []string
	NomorBerkas     []string
	Alamat          []string
	Keperluan       []string
	WaktuKedatangan []string
	Catatan         []string
	Petugas         []string
	Email           []string
	NIK             []string
}

func DefaultAliases() Aliases {
	return Aliases{
		NamaLengkap:     []string{"nama_lengkap", "nama_pengadu", "nama"},
		NomorTelepon:    []string{"nomor_telepon", "no_hp", "nohp", "no_telp", "telepon"},
		NomorBerkas:     []string{"nomor_berkas", "no_berkas"},
		Alamat:          []string{"alamat", "alamat_pengadu"},
		Keperluan:       []string{"keperluan", "ringkasan_pengaduan", "jenis_pengaduan", "pengaduan"},
		WaktuKedatangan: []string{"waktu_kedatangan", "tanggal_pengaduan", "tanggal", "waktu"},
		Catatan:         []string{"catatan", "keterangan"},
		Petugas:         []string{"petugas", "petugas_penerima", "nama_petugas"},
		Email:           []string{"email", "e_mail"},
		NIK:             []string{"nik", "no_ktp"},
	}
}

// statusSynonyms maps normalized free-text status values to stored labels.
var statusSynonyms = map[string]string{
	"selesai":     StatusSelesai,
	"done":        StatusSelesai,
	"proses":      StatusProses,
	"diproses":    StatusProses,
	"on_progress": StatusProses,
	"pending":     StatusPending,
}

// NormalizeKey folds a raw header string to its canonical form: lowercase,
// runs of whitespace/punctuation collapsed to single underscores, edges
// trimmed. "No. HP", "no_hp" and "NO HP" all become "no_hp".
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	pendingSep := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}
	return b.String()
}

// truthy reports whether a checkbox-style cell marks its column as set.
func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "1.0", "true", "ya", "yes", "✓", "√", "v":
		return true
	}
	return false
}

var arrivalLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
	"02-01-2006 15:04",
	"02-01-2006",
	"02/01/2006 15:04",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"2 Jan 2006",
	"2 January 2006",
}

// ParseArrival parses the many date shapes seen in exports. ok is false when
// the text is non-empty but matches no known layout.
func ParseArrival(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range arrivalLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MapRow converts one Record into a canonical Draft using the alias table.
// now supplies the default arrival timestamp for rows without a date.
func MapRow(rec *Record, aliases Aliases, now time.Time) Draft {
	norm := make(map[string]string, len(rec.Keys()))
	normKeys := make([]string, 0, len(rec.Keys()))
	for _, k := range rec.Keys() {
		nk := NormalizeKey(k)
		if nk == "" {
			continue
		}
		if _, seen := norm[nk]; !seen {
			normKeys = append(normKeys, nk)
		}
		norm[nk] = rec.Get(k)
	}

	first := func(keys []string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(norm[k]); v != "" {
				return v
			}
		}
		return ""
	}

	d := Draft{
		NamaLengkap:  first(aliases.NamaLengkap),
		NomorTelepon: first(aliases.NomorTelepon),
		NomorBerkas:  first(aliases.NomorBerkas),
		Alamat:       first(aliases.Alamat),
		Keperluan:    first(aliases.Keperluan),
		Catatan:      first(aliases.Catatan),
		Petugas:      first(aliases.Petugas),
		Email:        first(aliases.Email),
		NIK:          first(aliases.NIK),
		Status:       resolveStatus(norm, normKeys),
	}

	d.ArrivalText = first(aliases.WaktuKedatangan)
	if t, ok := ParseArrival(d.ArrivalText); ok {
		d.WaktuKedatangan = t
	} else {
		d.WaktuKedatangan = now
	}
	return d
}

// resolveStatus applies the status policy in priority order: a truthy
// "selesai" flag beats a truthy "proses" flag, which beats a free-text
// status column, which beats the Pending default.
func resolveStatus(norm map[string]string, keys []string) string {
	hasSelesai, hasProses := false, false
	for _, k := range keys {
		if !truthy(norm[k]) {
			continue
		}
		if strings.Contains(k, "selesai") {
			hasSelesai = true
		} else if strings.Contains(k, "proses") {
			hasProses = true
		}
	}
	if hasSelesai {
		return StatusSelesai
	}
	if hasProses {
		return StatusProses
	}
	if txt := strings.TrimSpace(norm["status"]); txt != "" {
		if mapped, ok := statusSynonyms[NormalizeKey(txt)]; ok {
			return mapped
		}
		return StatusPending
	}
	return StatusPending
}

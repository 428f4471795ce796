package ingest

import "strings"

// IsEmptyRecord reports whether every cell of the row is blank after
// trimming. Empty rows are skipped silently (but counted).
func IsEmptyRecord(rec *Record) bool {
	for _, k := range rec.Keys() {
		v := strings.TrimSpace(rec.Get(k))
		if v != "" && !strings.EqualFold(v, "nan") {
			return false
		}
	}
	return true
}

// HasEssentialData is the acceptance gate for a draft: a real name (length
// >= 3, so placeholders like "-" or "x" fail) plus at least one secondary
// signal — a usable phone, a purpose longer than 5 chars, or an address
// longer than 3 chars.
func HasEssentialData(d Draft) bool {
	name := strings.TrimSpace(d.NamaLengkap)
	if len([]rune(name)) < 3 {
		return false
	}

	phone := strings.TrimSpace(d.NomorTelepon)
	if phone != "" && phone != "-" {
		return true
	}
	if len([]rune(strings.TrimSpace(d.Keperluan))) > 5 {
		return true
	}
	if len([]rune(strings.TrimSpace(d.Alamat))) > 3 {
		return true
	}
	return false
}

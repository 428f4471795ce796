package ingest

import "strings"

// NormalizeName folds a person name for matching: trimmed, lowercased,
// internal whitespace runs collapsed to one space.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizePhone strips spaces, dashes and slashes, drops a single leading
// zero and keeps the first 10 digits, so "0812-3456-7890" and
// "812 3456 7890" collide.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '-', '/':
		default:
			b.WriteRune(r)
		}
	}
	p := strings.TrimPrefix(b.String(), "0")
	if len(p) > 10 {
		p = p[:10]
	}
	return p
}

// NormalizeDate reduces an arrival cell to its calendar date (YYYY-MM-DD).
// Unparseable text yields "" — the fingerprint still forms, the date segment
// just cannot disambiguate.
func NormalizeDate(s string) string {
	if t, ok := ParseArrival(s); ok {
		return t.Format("2006-01-02")
	}
	return ""
}

// Fingerprint derives the within-batch duplicate key for a draft:
// normalized name + phone + calendar date. A draft whose arrival cell was
// blank fingerprints on its defaulted (ingestion-time) date.
func Fingerprint(d Draft) string {
	date := NormalizeDate(d.ArrivalText)
	if strings.TrimSpace(d.ArrivalText) == "" {
		date = d.WaktuKedatangan.Format("2006-01-02")
	}
	return NormalizeName(d.NamaLengkap) + "|" + NormalizePhone(d.NomorTelepon) + "|" + date
}

// FingerprintDate is the calendar-date segment used for store lookups,
// following the same rules as Fingerprint.
func FingerprintDate(d Draft) string {
	if strings.TrimSpace(d.ArrivalText) == "" {
		return d.WaktuKedatangan.Format("2006-01-02")
	}
	return NormalizeDate(d.ArrivalText)
}

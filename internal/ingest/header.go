package ingest

import (
	"fmt"
	"strings"
)

// Vocabulary holds the header synonym sets used by the locator. The default
// table covers the Indonesian office vocabulary seen in visitor and
// call-center exports; it is data, not logic, so new synonyms or locales are
// a table edit away.
type Vocabulary struct {
	Sequence  []string // exact match, e.g. "no", "no."
	Name      []string // substring match
	Complaint []string
	Date      []string
	// Second-row tokens that mark a child status header ("Selesai"/"Proses").
	StatusFlags []string
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Sequence:    []string{"no", "nomor", "urut"},
		Name:        []string{"nama lengkap", "nama pengadu", "nama"},
		Complaint:   []string{"ringkasan pengaduan", "pengaduan", "keperluan"},
		Date:        []string{"tanggal", "waktu"},
		StatusFlags: []string{"selesai", "proses"},
	}
}

// HeaderInfo is the result of header location: which row the header sits on,
// whether a second row belongs to it, the per-column header strings to map
// data rows with, and the 0-indexed row where data begins.
type HeaderInfo struct {
	Row       int
	MultiRow  bool
	Columns   []string
	DataStart int
}

// LocateHeader scans the first scanLimit rows for a header row, then decides
// whether the row below is a status child header (two-row header) or data.
// When nothing matches it falls back to row 0, best effort.
func LocateHeader(g *Grid, vocab Vocabulary, scanLimit int) HeaderInfo {
	limit := len(g.Rows)
	if scanLimit < limit {
		limit = scanLimit
	}

	for r := 0; r < limit; r++ {
		var hasSeq, hasName, hasComplaint, hasDate bool
		for _, cell := range g.Rows[r] {
			norm := strings.ToLower(strings.TrimSpace(cell))
			if norm == "" {
				continue
			}
			if matchExact(stripNonAlnum(norm), vocab.Sequence) {
				hasSeq = true
			}
			if matchContains(norm, vocab.Name) {
				hasName = true
			}
			if matchContains(norm, vocab.Complaint) {
				hasComplaint = true
			}
			if matchContains(norm, vocab.Date) {
				hasDate = true
			}
		}
		if (hasSeq && hasName) || (hasName && hasComplaint) || (hasName && hasDate) {
			return buildHeader(g, vocab, r)
		}
	}
	// No row qualified: read from the top and hope for the best.
	return buildHeader(g, vocab, 0)
}

func buildHeader(g *Grid, vocab Vocabulary, headerRow int) HeaderInfo {
	info := HeaderInfo{Row: headerRow, DataStart: headerRow + 1}
	info.MultiRow = isStatusChildRow(g, vocab, headerRow+1)
	width := g.Width()

	if !info.MultiRow {
		for c := 0; c < width; c++ {
			info.Columns = append(info.Columns, g.Cell(headerRow, c))
		}
		return info
	}

	// Two-row header: merge parent (merge-aware) and child per column.
	info.DataStart = headerRow + 2
	for c := 0; c < width; c++ {
		parent := g.Cell(headerRow, c)
		child := ""
		if headerRow+1 < len(g.Rows) && c < len(g.Rows[headerRow+1]) {
			child = strings.TrimSpace(g.Rows[headerRow+1][c])
		}
		switch {
		case strings.Contains(strings.ToLower(parent), "status") && child != "":
			info.Columns = append(info.Columns, "Status "+child)
		case parent == "" && child != "":
			info.Columns = append(info.Columns, child)
		case parent != "":
			info.Columns = append(info.Columns, parent)
		default:
			info.Columns = append(info.Columns, fmt.Sprintf("Column_%d", c))
		}
	}
	return info
}

// isStatusChildRow reports whether row r looks like the child half of a
// two-row header: it carries status keyword cells and nothing that looks
// like real data (long numbers, long free text).
func isStatusChildRow(g *Grid, vocab Vocabulary, r int) bool {
	if r >= len(g.Rows) {
		return false
	}
	statusCells, dataCells := 0, 0
	for _, cell := range g.Rows[r] {
		s := strings.TrimSpace(cell)
		if s == "" {
			continue
		}
		norm := strings.ToLower(s)
		if matchExact(norm, vocab.StatusFlags) {
			statusCells++
			continue
		}
		if isNumeric(s) && len(s) > 5 {
			dataCells++
			continue
		}
		if len(s) > 10 && !matchContains(norm, vocab.StatusFlags) {
			dataCells++
		}
	}
	return statusCells > 0 && dataCells == 0
}

// Record is one data row re-materialized under the located header: an
// ordered mapping from raw header string to cell value.
type Record struct {
	keys []string
	vals map[string]string
}

func (r *Record) Set(key, val string) {
	if _, seen := r.vals[key]; !seen {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = val
}

func (r *Record) Get(key string) string { return r.vals[key] }
func (r *Record) Keys() []string        { return r.keys }

// Records slices the grid below the header into Record values, one per data
// row, keyed by the header columns.
func Records(g *Grid, info HeaderInfo) []*Record {
	var out []*Record
	for r := info.DataStart; r < len(g.Rows); r++ {
		rec := &Record{vals: make(map[string]string)}
		for c, name := range info.Columns {
			if name == "" {
				name = fmt.Sprintf("Column_%d", c)
			}
			val := ""
			if c < len(g.Rows[r]) {
				val = g.Rows[r][c]
			}
			rec.Set(name, val)
		}
		out = append(out, rec)
	}
	return out
}

func matchExact(s string, set []string) bool {
	for _, w := range set {
		if s == w {
			return true
		}
	}
	return false
}

func matchContains(s string, set []string) bool {
	for _, w := range set {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

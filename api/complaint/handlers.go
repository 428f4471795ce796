package complaint

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"PengaduanKPU/internal/checksum"
	"PengaduanKPU/internal/config"
	"PengaduanKPU/internal/ingest"
	"PengaduanKPU/internal/logger"
	"PengaduanKPU/internal/store"

	"PengaduanKPU/api/auth"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "message": msg})
}

// RequireSession gates admin routes on a live session id. The check also
// counts as session activity, so a session in constant use stays open.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get("X-Session-ID")
		if sessionID == "" {
			writeError(w, http.StatusUnauthorized, "session required")
			return
		}
		if !auth.ValidateSession(sessionID) {
			writeError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UploadComplaints ingests one uploaded spreadsheet (xlsx/xls/csv) and
// answers with the batch summary.
func UploadComplaints(st *store.PGStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "failed to parse multipart form")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file tidak ditemukan")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read file")
			return
		}

		batchID := uuid.New().String()
		logger.Audit(fmt.Sprintf("[Upload] batch=%s file=%s sha256=%s",
			batchID, header.Filename, checksum.Digest(data)))

		pipeline := ingest.NewPipeline(st)
		summary, err := pipeline.Ingest(r.Context(), data, header.Filename)
		if err != nil {
			writeError(w, http.StatusBadRequest, "gagal membaca file: "+err.Error())
			return
		}

		logger.Audit(fmt.Sprintf("[Upload] batch=%s total=%d inserted=%d updated=%d duplicates=%d errors=%d",
			batchID, summary.Total, summary.Inserted, summary.Updated,
			summary.DuplicatesInBatch, summary.Errors))

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"message":  "Upload berhasil",
			"batch_id": batchID,
			"summary":  summary,
		})
	}
}

// GetByUnitCode is the public status-check lookup.
func GetByUnitCode(st *store.PGStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["code"]
		c, err := st.FindByUnitCode(r.Context(), strings.ToUpper(strings.TrimSpace(code)))
		if err == ingest.ErrNotFound {
			writeError(w, http.StatusNotFound, "kode unit tidak ditemukan")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "terjadi kesalahan")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": c})
	}
}

func GetAllComplaints(st *store.PGStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		limit, _ := strconv.Atoi(q.Get("limit"))
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 10
		}

		items, total, err := st.List(r.Context(), page, limit, q.Get("search"), q.Get("status"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "terjadi kesalahan")
			return
		}
		totalPages := (total + limit - 1) / limit
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    items,
			"pagination": map[string]interface{}{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": totalPages,
			},
		})
	}
}

func GetStatistics(st *store.PGStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := st.Statistics(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "terjadi kesalahan")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "statistics": stats})
	}
}

// complaintPayload is the JSON body of create/update calls.
type complaintPayload struct {
	NamaLengkap     string `json:"nama_lengkap"`
	NomorTelepon    string `json:"nomor_telepon"`
	NomorBerkas     string `json:"nomor_berkas"`
	Alamat          string `json:"alamat"`
	Keperluan       string `json:"keperluan"`
	WaktuKedatangan string `json:"waktu_kedatangan"`
	Catatan         string `json:"catatan"`
	Petugas         string `json:"petugas"`
	Status          string `json:"status"`
	Email           string `json:"email"`
	NIK             string `json:"nik"`
}

func (p complaintPayload) draft(now time.Time) ingest.Draft {
	d := ingest.Draft{
		NamaLengkap:  p.NamaLengkap,
		NomorTelepon: p.NomorTelepon,
		NomorBerkas:  p.NomorBerkas,
		Alamat:       p.Alamat,
		Keperluan:    p.Keperluan,
		ArrivalText:  p.WaktuKedatangan,
		Catatan:      p.Catatan,
		Petugas:      p.Petugas,
		Status:       p.Status,
		Email:        p.Email,
		NIK:          p.NIK,
	}
	if d.Status == "" {
		d.Status = ingest.StatusPending
	}
	if t, ok := ingest.ParseArrival(p.WaktuKedatangan); ok {
		d.WaktuKedatangan = t
	} else {
		d.WaktuKedatangan = now
	}
	return d
}

func CreateComplaint(st *store.PGStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p complaintPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if strings.TrimSpace(p.NamaLengkap) == "" {
			writeError(w, http.StatusBadRequest, "nama lengkap wajib diisi")
			return
		}

		codes := ingest.NewCodeGenerator(config.UnitCodePrefix, config.UnitCodeAlphabet,
			config.UnitCodeLength, config.UnitCodeMaxAttempts)
		code, err := codes.Generate(r.Context(), st)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "terjadi kesalahan: "+err.Error())
			return
		}

		d := p.draft(time.Now())
		c := &ingest.Complaint{
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
		}
		if err := st.Insert(r.Context(), c); err != nil {
			writeError(w, http.StatusInternalServerError, "terjadi kesalahan: "+err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"message": "Data berhasil ditambahkan",
			"data":    map[string]interface{}{"id": c.ID, "unit_code": c.UnitCode},
		})
	}
}

// UpdateComplaint overlays the non-empty payload fields on the stored
// record. unit_code is never touched.
func UpdateComplaint(st *store.PGStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		var p complaintPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		existing, err := st.FindByID(r.Context(), id)
		if err == ingest.ErrNotFound {
			writeError(w, http.StatusNotFound, "data tidak ditemukan")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "terjadi kesalahan")
			return
		}

		d := ingest.Draft{
			NamaLengkap:     overlay(p.NamaLengkap, existing.NamaLengkap),
			NomorTelepon:    overlay(p.NomorTelepon, existing.NomorTelepon),
			NomorBerkas:     overlay(p.NomorBerkas, existing.NomorBerkas),
			Alamat:          overlay(p.Alamat, existing.Alamat),
			Keperluan:       overlay(p.Keperluan, existing.Keperluan),
			Catatan:         overlay(p.Catatan, existing.Catatan),
			Petugas:         overlay(p.Petugas, existing.Petugas),
			Status:          overlay(p.Status, existing.Status),
			Email:           overlay(p.Email, existing.Email),
			NIK:             overlay(p.NIK, existing.NIK),
			WaktuKedatangan: existing.WaktuKedatangan,
		}
		if t, ok := ingest.ParseArrival(p.WaktuKedatangan); ok {
			d.WaktuKedatangan = t
		}

		if err := st.UpdateByID(r.Context(), id, d); err != nil {
			writeError(w, http.StatusInternalServerError, "terjadi kesalahan")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Data berhasil diupdate",
		})
	}
}

func overlay(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func DeleteComplaint(st *store.PGStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		if err := st.DeleteByID(r.Context(), id); err == ingest.ErrNotFound {
			writeError(w, http.StatusNotFound, "data tidak ditemukan")
			return
		} else if err != nil {
			writeError(w, http.StatusInternalServerError, "terjadi kesalahan")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Data berhasil dihapus",
		})
	}
}

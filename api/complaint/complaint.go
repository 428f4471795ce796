package complaint

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"PengaduanKPU/internal/store"
)

// StartComplaintService runs the complaint HTTP service on its own port.
// The unit-code lookup is public; everything else sits behind the session
// check.
func StartComplaintService(pool *pgxpool.Pool, port string) {
	st := store.New(pool)
	router := mux.NewRouter()

	router.HandleFunc("/complaint/unit/{code}", GetByUnitCode(st)).Methods("GET")

	admin := router.PathPrefix("/complaint").Subrouter()
	admin.Use(RequireSession)
	admin.HandleFunc("/upload", UploadComplaints(st)).Methods("POST")
	admin.HandleFunc("/all", GetAllComplaints(st)).Methods("GET")
	admin.HandleFunc("/statistics", GetStatistics(st)).Methods("GET")
	admin.HandleFunc("/create", CreateComplaint(st)).Methods("POST")
	admin.HandleFunc("/update/{id}", UpdateComplaint(st)).Methods("PUT")
	admin.HandleFunc("/delete/{id}", DeleteComplaint(st)).Methods("DELETE")

	log.Println("Complaint Service started on", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Complaint Service failed: %v", err)
	}
}

package complaint

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"PengaduanKPU/internal/serviceiface"
)

type ComplaintService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewComplaintService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &ComplaintService{config: cfg, pool: pool}
}

func (s *ComplaintService) Name() string { return "complaint" }

func (s *ComplaintService) Start() error {
	port, _ := s.config["port"].(string)
	if port == "" {
		port = ":6151"
	}
	go StartComplaintService(s.pool, port)
	return nil
}

func (s *ComplaintService) Stop() error {
	return nil
}

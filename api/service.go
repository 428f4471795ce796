package api

import "PengaduanKPU/internal/serviceiface"

type GatewayService struct {
	config map[string]interface{}
}

func NewGatewayService(cfg map[string]interface{}) serviceiface.Service {
	return &GatewayService{config: cfg}
}

func (s *GatewayService) Name() string { return "gateway" }

func (s *GatewayService) Start() error {
	port, _ := s.config["port"].(string)
	var targets []string
	if raw, ok := s.config["complaint_targets"].([]interface{}); ok {
		for _, t := range raw {
			if str, ok := t.(string); ok {
				targets = append(targets, str)
			}
		}
	}
	go StartGateway(port, targets)
	return nil
}

func (s *GatewayService) Stop() error {
	return nil
}

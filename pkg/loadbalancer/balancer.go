package loadbalancer

import "sync"

// LoadBalancer rotates over complaint-service replicas for the gateway's
// reverse proxy. With a single target it degenerates to that target.
type LoadBalancer struct {
	targets []string
	mu      sync.Mutex
	current int
}

func New(targets []string) *LoadBalancer {
	return &LoadBalancer{targets: targets}
}

func (lb *LoadBalancer) Next() string {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	t := lb.targets[lb.current]
	lb.current = (lb.current + 1) % len(lb.targets)
	return t
}

package health

import (
	"context"
	"time"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"

	componentRunning     = "running"
	componentMemory      = "memory"
	componentUnavailable = "unavailable"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Report is the payload served by the health endpoints.
type Report struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Service encapsulates health-related checks.
type Service struct {
	db      Pinger
	timeout time.Duration
}

// NewService constructs a new health service. A nil db reports in-memory
// persistence.
func NewService(db Pinger) *Service {
	return &Service{db: db, timeout: 2 * time.Second}
}

// Status reports the state of each collaborator the API depends on.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{
		Status: StatusHealthy,
		Services: map[string]string{
			"text_extractor": componentRunning,
			"ats_scorer":     componentRunning,
			"database":       componentMemory,
		},
	}
	if s == nil || s.db == nil {
		return report
	}

	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.db.PingContext(pingCtx); err != nil {
		report.Status = StatusDegraded
		report.Services["database"] = componentUnavailable
		return report
	}
	report.Services["database"] = componentRunning
	return report
}

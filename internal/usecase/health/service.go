package health

import (
	"context"

	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/brewdex/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks.
type Service struct {
	directory DirectoryChecker
}

// New creates a Service.
func New(directory DirectoryChecker) *Service {
	return &Service{directory: directory}
}

// Check runs health checks against all components.
// The session itself holds no external resources, so only the directory is probed.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.directory.HealthCheck(ctx); err != nil {
		logpkg.FromContext(ctx).Warn("Directory health check failed", zap.Error(err))
		checks["directory"] = CheckError
	} else {
		checks["directory"] = CheckOK
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

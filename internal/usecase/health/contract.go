package health

import "context"

// DirectoryChecker checks brewery directory availability.
type DirectoryChecker interface {
	HealthCheck(ctx context.Context) error
}

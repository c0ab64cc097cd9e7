package metrics

import "context"

// HealthChecker is the interface a component implements to report whether it
// is connected and ready to serve.
type HealthChecker interface {
	// IsHealthy checks if the component is healthy
	IsHealthy(ctx context.Context) error
}

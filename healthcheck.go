package flexpay

import (
	"context"
	"net/http"
)

// HealthCheckService probes gateway availability.
type HealthCheckService struct {
	client *Client
}

type healthCheckResponse struct {
	Message string `json:"message"`
}

// Check reports whether the gateway is reachable and answering. Unlike every
// other operation, transport failures do not propagate; they are the
// unhealthy signal itself.
func (s *HealthCheckService) Check(ctx context.Context) bool {
	_, err := do[struct{}, healthCheckResponse](ctx, s.client, "health check", http.MethodGet, "/api/health", nil)
	return err == nil
}

package grpcserver

import (
	"context"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	eventregv1 "github.com/rzbill/eventreg/api/eventreg/v1"
	logpkg "github.com/rzbill/eventreg/pkg/log"
)

// refreshHealth publishes SERVING or NOT_SERVING for the whole server and for
// each registered service, based on a store probe.
func (s *Server) refreshHealth(ctx context.Context) {
	st := healthpb.HealthCheckResponse_SERVING
	if err := s.rt.CheckHealth(ctx); err != nil {
		s.logger.Warn("store health check failed", logpkg.Err(err))
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	for _, name := range []string{"", eventregv1.EventsServiceName, eventregv1.NamespacesServiceName} {
		s.health.SetServingStatus(name, st)
	}
}

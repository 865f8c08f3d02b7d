package grpcserver

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	eventregv1 "github.com/rzbill/eventreg/api/eventreg/v1"
	"github.com/rzbill/eventreg/internal/runtime"
	eventsvc "github.com/rzbill/eventreg/internal/services/events"
	logpkg "github.com/rzbill/eventreg/pkg/log"
)

const defaultHealthInterval = 5 * time.Second

// Server owns the gRPC server instance and runtime.
type Server struct {
	rt     *runtime.Runtime
	svc    *eventsvc.Service
	logger logpkg.Logger
	grpc   *grpc.Server
	health *health.Server
	lis    net.Listener

	// HealthInterval is how often the store is probed while serving.
	HealthInterval time.Duration
}

// New constructs a gRPC server with its own events service.
func New(rt *runtime.Runtime, logger logpkg.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	return NewWithService(rt, eventsvc.NewWithLogger(rt, logger.With(logpkg.Component("events"))), logger, opts...)
}

// NewWithService constructs a gRPC server around a shared events service and
// registers the Events, Namespaces and standard health services.
func NewWithService(rt *runtime.Runtime, svc *eventsvc.Service, logger logpkg.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	l := logger.With(logpkg.Component("grpc"))
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(loggingInterceptor(l))}, opts...)
	s := &Server{
		rt:             rt,
		svc:            svc,
		logger:         l,
		grpc:           grpc.NewServer(opts...),
		health:         health.NewServer(),
		HealthInterval: defaultHealthInterval,
	}
	eventregv1.RegisterEventsServer(s.grpc, &eventsServer{svc: svc})
	eventregv1.RegisterNamespacesServer(s.grpc, &namespacesServer{svc: svc})
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.refreshHealth(context.Background())
	return s
}

// ListenAndServe binds to addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve serves on l until ctx is done, probing store health meanwhile.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.lis = l
	s.logger.Info("grpc listening", logpkg.Str("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.grpc.Serve(l) }()

	interval := s.HealthInterval
	if interval <= 0 {
		interval = defaultHealthInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.health.Shutdown()
			s.grpc.GracefulStop()
			return nil
		case err := <-errCh:
			return err
		case <-ticker.C:
			s.refreshHealth(ctx)
		}
	}
}

// Close stops the server and closes the listener.
func (s *Server) Close() {
	if s.grpc != nil {
		s.health.Shutdown()
		s.grpc.GracefulStop()
	}
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

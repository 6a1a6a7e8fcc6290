package transport

import (
	"context"
	"time"

	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// NewGRPCServer builds a gRPC server with the standard interceptor chain and
// registers hs as its health service.
func NewGRPCServer(logger *zap.Logger, hs *HealthService) *grpc.Server {
	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	srv := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(srv)

	healthpb.RegisterHealthServer(srv, hs.Server())
	return srv
}

// HealthService mirrors dependency probes into the gRPC health protocol.
type HealthService struct {
	server  *health.Server
	service string
	checks  map[string]HealthChecker
	logger  *zap.Logger
}

// NewHealthService reports service as NOT_SERVING until the first probe.
func NewHealthService(service string, checks map[string]HealthChecker, logger *zap.Logger) *HealthService {
	srv := health.NewServer()
	srv.SetServingStatus(service, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthService{
		server:  srv,
		service: service,
		checks:  checks,
		logger:  logger.Named("health"),
	}
}

// Server returns the underlying health server.
func (h *HealthService) Server() *health.Server {
	return h.server
}

// Probe runs every check once and updates both the named service and the
// overall ("") status.
func (h *HealthService) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	for name, c := range h.checks {
		if err := c.Ping(ctx); err != nil {
			h.logger.Warn("dependency unhealthy", zap.String("dependency", name), zap.Error(err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	h.server.SetServingStatus(h.service, status)
	h.server.SetServingStatus("", status)
	return status
}

// Run probes every interval until ctx is done, then marks everything as
// shutting down.
func (h *HealthService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
			h.Probe(ctx)
		}
	}
}

package grpc

import (
	"context"
	"time"

	"eventhub-backend/internal/api/grpc/interceptor"
	"eventhub-backend/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported next to the overall "" entry.
const ServiceName = "eventhub.EventHub"

const (
	pingTimeout     = 2 * time.Second
	defaultInterval = 10 * time.Second
)

// Pinger is anything that can report database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker keeps the standard gRPC health service in sync with the database.
type HealthChecker struct {
	server *health.Server
	pinger Pinger
}

func NewHealthChecker(pinger Pinger) *HealthChecker {
	return &HealthChecker{
		server: health.NewServer(),
		pinger: pinger,
	}
}

// Check pings the database once and publishes the result.
func (h *HealthChecker) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.pinger.Ping(ctx); err != nil {
		logger.Warn("Database ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
	return status
}

// Run re-checks every interval until ctx is done, then marks everything not serving.
func (h *HealthChecker) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// NewServer builds the gRPC server exposing health and reflection.
func NewServer(checker *HealthChecker) *grpc.Server {
	s := grpc.NewServer(
		grpc.UnaryInterceptor(interceptor.UnaryLogging()),
	)
	healthpb.RegisterHealthServer(s, checker.server)

	// Register reflection service for grpcurl
	reflection.Register(s)
	return s
}

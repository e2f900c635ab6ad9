package grpc

import (
	"fmt"
	"log/slog"
	"net"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/atlasbank/corebank/internal/usecase/accountfactory"
	"github.com/atlasbank/corebank/internal/usecase/accountstatus"
	"github.com/atlasbank/corebank/internal/usecase/transaction"
)

// Server is the serving shell around the money-movement engine. It owns the
// gRPC listener, interceptors, and the standard health service; the business
// RPC schema is registered by the surrounding service layer, which maps its
// DTOs onto the engine handles held here.
type Server struct {
	grpc         *grpclib.Server
	health       *health.Server
	logger       *slog.Logger
	port         int
	transactions *transaction.Service
	statuses     *accountstatus.Service
	accounts     *accountfactory.Registry
}

// New creates the server with auth and logging interceptors and registers
// the health and reflection services.
func New(
	port int,
	authToken string,
	logger *slog.Logger,
	transactions *transaction.Service,
	statuses *accountstatus.Service,
	accounts *accountfactory.Registry,
) *Server {
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			AuthInterceptor(authToken),
			LoggingInterceptor(logger),
		),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	return &Server{
		grpc:         grpcServer,
		health:       healthServer,
		logger:       logger,
		port:         port,
		transactions: transactions,
		statuses:     statuses,
		accounts:     accounts,
	}
}

// Transactions returns the engine handle for transaction processing.
func (s *Server) Transactions() *transaction.Service { return s.transactions }

// Statuses returns the engine handle for account status transitions.
func (s *Server) Statuses() *accountstatus.Service { return s.statuses }

// Accounts returns the engine handle for account creation.
func (s *Server) Accounts() *accountfactory.Registry { return s.accounts }

// RegisterService registers a business RPC schema on the underlying gRPC
// server. Must be called before Run.
func (s *Server) RegisterService(desc *grpclib.ServiceDesc, impl any) {
	s.grpc.RegisterService(desc, impl)
}

// Run listens on the configured port and serves until Stop is called.
func (s *Server) Run() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.logger.Info("gRPC server listening", "port", s.port)

	return s.grpc.Serve(lis)
}

// Stop gracefully stops the server, waiting for in-flight calls to finish.
func (s *Server) Stop() {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	s.grpc.GracefulStop()
}

// ForceStop stops the server immediately, closing open connections.
func (s *Server) ForceStop() {
	s.grpc.Stop()
}

package main

import (
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcadapter "github.com/atlasbank/corebank/internal/adapter/grpc"
	"github.com/atlasbank/corebank/internal/adapter/repository/postgres"
	"github.com/atlasbank/corebank/internal/config"
	"github.com/atlasbank/corebank/internal/domain"
	"github.com/atlasbank/corebank/internal/event"
	"github.com/atlasbank/corebank/internal/logging"
	"github.com/atlasbank/corebank/internal/usecase/accountfactory"
	"github.com/atlasbank/corebank/internal/usecase/accountstatus"
	"github.com/atlasbank/corebank/internal/usecase/transaction"
)

func main() {
	// 1. Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.New(cfg.Logging)

	// 2. Database and repositories
	db, err := postgres.NewDB(cfg.DB.ConnString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	// 3. Event fan-out
	bus := event.NewBus(logger, cfg.Engine.EventBuffer,
		event.FraudReviewConsumer(logger),
		event.LowBalanceConsumer(logger),
		event.AuditLogConsumer(logger),
	)

	// 4. Engine services
	clock := domain.SystemClock{}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	factoryRegistry := accountfactory.NewRegistry(accountRepo, bus, clock, rnd)
	statusService := accountstatus.NewService(accountRepo, bus, clock)
	transactionService := transaction.NewService(accountRepo, transactionRepo, bus, clock, logger,
		transaction.Thresholds{
			HighValue:  cfg.Engine.HighValueThreshold,
			LowBalance: cfg.Engine.LowBalanceThreshold,
		},
	)

	// 5. gRPC serving shell
	server := grpcadapter.New(cfg.Server.Port, cfg.Server.AuthToken, logger,
		transactionService, statusService, factoryRegistry)

	go func() {
		if err := server.Run(); err != nil {
			log.Fatalf("Failed to serve gRPC server: %v", err)
		}
	}()

	// 6. Graceful shutdown: stop the server first, then drain the event bus
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down", "signal", sig.String())

	stopped := make(chan struct{})
	go func() {
		server.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(cfg.Server.ShutdownTimeout):
		logger.Warn("graceful stop timed out, forcing shutdown")
		server.ForceStop()
	}

	bus.Close()
	logger.Info("server stopped")
}

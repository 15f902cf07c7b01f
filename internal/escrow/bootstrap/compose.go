package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"rideescrow/internal/catalog"
	"rideescrow/internal/escrow/adapter/in/transport"
	"rideescrow/internal/escrow/adapter/out/out_amqp"
	"rideescrow/internal/escrow/adapter/out/out_ws"
	"rideescrow/internal/escrow/adapter/out/repo"
	"rideescrow/internal/escrow/application/usecase"
	"rideescrow/internal/funds"
	"rideescrow/internal/registry"
	"rideescrow/internal/shared/auth"
	"rideescrow/internal/shared/config"
	db_conn "rideescrow/internal/shared/db"
	"rideescrow/internal/shared/logger"
	"rideescrow/internal/shared/mq"
	"rideescrow/internal/shared/ws"
)

// Run assembles and starts the escrow service: Postgres, RabbitMQ, the
// WebSocket hub, the settlement engine and the HTTP server. Blocks until
// ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "escrow_service_starting", Message: "initializing escrow service"})

	dbPool, err := db_conn.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer db_conn.Close(dbPool, log)

	if err := db_conn.Migrate(ctx, dbPool); err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_migration_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	mqConn, err := mq.NewRabbitMQ(ctx, cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "rabbitmq_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer mqConn.Close()

	if err := mq.SetupTopology(mqConn, log); err != nil {
		log.Fatal(logger.Entry{
			Action:  "rabbitmq_topology_setup_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Notification hub. Clients authenticate with the same JWT the HTTP
	// API uses.
	wsHub := ws.NewHub(jwtService.ExtractParticipantID, log)
	go wsHub.Run(ctx)

	// Outbound adapters.
	participantRepo := registry.NewPgRepository(dbPool, log)
	destinationRepo := catalog.NewPgRepository(dbPool, log)
	rideLedger := repo.NewPgRideLedger(dbPool, log)
	fundGateway := funds.NewPgGateway(dbPool, log)
	eventPublisher := out_amqp.NewEventPublisher(mqConn, log)
	rideNotifier := out_ws.NewHubNotifier(wsHub)

	// Services and the settlement engine.
	registryService := registry.NewService(participantRepo, log)
	catalogPublisher := catalog.NewAmqpPublisher(mqConn, log)
	catalogService := catalog.NewService(destinationRepo, registryService, catalogPublisher, log)

	engine := usecase.NewSettlementEngine(
		rideLedger,
		fundGateway,
		registryService,
		catalogService,
		eventPublisher,
		rideNotifier,
		log,
	)

	// HTTP surface.
	httpHandler := transport.NewHTTPHandler(
		registryService,
		catalogService,
		fundGateway,
		engine, engine, engine, engine,
		log,
	)

	mux := http.NewServeMux()
	authMiddleware := transport.JWTMiddleware(jwtService, log)
	httpHandler.RegisterRoutes(mux, authMiddleware)
	mux.HandleFunc("/ws", wsHub.ServeWS)

	addr := fmt.Sprintf(":%d", cfg.Services.EscrowServicePort)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info(logger.Entry{
			Action:  "http_server_starting",
			Message: fmt.Sprintf("listening on %s", addr),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(logger.Entry{
				Action:  "http_server_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	<-ctx.Done()
	log.Info(logger.Entry{Action: "escrow_service_stopping", Message: "shutting down escrow service"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{
			Action:  "http_server_shutdown_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	} else {
		log.Info(logger.Entry{Action: "http_server_stopped", Message: "http server stopped gracefully"})
	}

	log.Info(logger.Entry{Action: "escrow_service_stopped", Message: "escrow service stopped"})
}

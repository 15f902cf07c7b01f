package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"rideescrow/internal/shared/config"
	"rideescrow/internal/shared/logger"

	auditboot "rideescrow/internal/audit/bootstrap"
	escrowboot "rideescrow/internal/escrow/bootstrap"
)

func main() {
	svc := flag.String("service", "escrow", "escrow|audit|all")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() { <-quit; cancel() }()

	switch *svc {
	case "escrow":
		log := logger.NewLogger("escrow-service")
		escrowboot.Run(ctx, cfg, log)

	case "audit":
		log := logger.NewLogger("audit-service")
		auditboot.Run(ctx, cfg, log)

	case "all":
		escrowLog := logger.NewLogger("escrow-service")
		auditLog := logger.NewLogger("audit-service")

		go escrowboot.Run(ctx, cfg, escrowLog)
		go auditboot.Run(ctx, cfg, auditLog)

	default:
		log := logger.NewLogger("bootstrap")
		log.Fatal(logger.Entry{Action: "invalid_service", Message: *svc})
	}

	<-ctx.Done()
}

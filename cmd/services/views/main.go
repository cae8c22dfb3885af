package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/qolzam/telar-blog/internal/middleware/requestid"
	"github.com/qolzam/telar-blog/internal/pkg/log"
	"github.com/qolzam/telar-blog/internal/platform"
	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
	"github.com/qolzam/telar-blog/views"
	"github.com/qolzam/telar-blog/views/handlers"
	"github.com/qolzam/telar-blog/views/rpc"
	"github.com/qolzam/telar-blog/views/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Runs the view counter alone: the callable HTTP routes on SERVER_PORT and
// the gRPC service on GRPC_PORT. Schema migrations are left to `blog migrate`.
func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		stdlog.Fatalf("Failed to load platform config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := platform.DefaultServiceOptions()
	opts.Migrate = false
	base, err := platform.NewBaseService(ctx, cfg, opts)
	if err != nil {
		stdlog.Fatalf("Failed to create base service: %v", err)
	}
	defer base.Close()

	counter, err := base.ViewCounter(ctx)
	if err != nil {
		stdlog.Fatalf("Failed to create view counter: %v", err)
	}
	viewService := services.NewViewService(counter)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(requestid.New())
	views.RegisterRoutes(app, &views.ViewsHandlers{ViewHandler: handlers.NewViewHandler(viewService)}, cfg)

	grpcServer := grpc.NewServer()
	views.RegisterGrpcServer(grpcServer, viewService)
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(rpc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		stdlog.Fatalf("Failed to listen on gRPC port: %v", err)
	}
	go func() {
		log.Info("Views gRPC service listening on %s", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("gRPC server stopped: %v", err)
			stop()
		}
	}()

	go func() {
		<-ctx.Done()
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		_ = app.ShutdownWithContext(shutdownCtx)
	}()

	log.Info("Starting Views Service on port %d", cfg.Server.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		stdlog.Fatalf("HTTP server failed: %v", err)
	}
}

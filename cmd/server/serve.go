package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/qolzam/telar-blog/internal/cache"
	"github.com/qolzam/telar-blog/internal/middleware/requestid"
	"github.com/qolzam/telar-blog/internal/pkg/log"
	"github.com/qolzam/telar-blog/internal/platform"
	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
	"github.com/qolzam/telar-blog/posts"
	postHandlers "github.com/qolzam/telar-blog/posts/handlers"
	postsServices "github.com/qolzam/telar-blog/posts/services"
	"github.com/qolzam/telar-blog/views"
	viewHandlers "github.com/qolzam/telar-blog/views/handlers"
	"github.com/qolzam/telar-blog/views/rpc"
	viewsServices "github.com/qolzam/telar-blog/views/services"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	RunE:  runServe,
}

// server holds everything serve starts and stops
type server struct {
	cfg    *platformconfig.Config
	base   *platform.BaseService
	app    *fiber.App
	grpc   *grpc.Server
	health *health.Server
	warmer *cache.CacheWarmer
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, closeLog, err := loadConfig()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := newServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.base.Close()

	return s.run(ctx)
}

func newServer(ctx context.Context, cfg *platformconfig.Config) (*server, error) {
	base, err := platform.NewBaseService(ctx, cfg, platform.DefaultServiceOptions())
	if err != nil {
		return nil, err
	}

	postRepo, err := postsServices.NewPostRepositoryFromProvider(ctx, base.Provider)
	if err != nil {
		base.Close()
		return nil, err
	}
	postService := postsServices.NewPostService(postRepo, base.Cache)

	counter, err := base.ViewCounter(ctx)
	if err != nil {
		base.Close()
		return nil, err
	}
	viewService := viewsServices.NewViewService(counter)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: !cfg.Server.Debug,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.WebDomain,
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	posts.RegisterRoutes(app, &posts.PostsHandlers{PostHandler: postHandlers.NewPostHandler(postService)}, cfg)
	views.RegisterRoutes(app, &views.ViewsHandlers{ViewHandler: viewHandlers.NewViewHandler(viewService)}, cfg)

	grpcServer := grpc.NewServer()
	views.RegisterGrpcServer(grpcServer, viewService)
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(rpc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	warmer := cache.NewCacheWarmer(base.Cache, cfg.Cache.WarmInterval)
	postsServices.RegisterWarmingJobs(warmer, postRepo, base.Cache)

	return &server{
		cfg:    cfg,
		base:   base,
		app:    app,
		grpc:   grpcServer,
		health: healthServer,
		warmer: warmer,
	}, nil
}

// run serves until ctx is canceled or either listener fails, then drains both within SHUTDOWN_TIMEOUT
func (s *server) run(ctx context.Context) error {
	httpAddr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	grpcAddr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.GRPCPort)

	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", grpcAddr, err)
	}

	s.warmer.Start(ctx)
	defer s.warmer.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening on %s", httpAddr)
		return s.app.Listen(httpAddr)
	})
	g.Go(func() error {
		log.Info("gRPC server listening on %s", lis.Addr())
		if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		s.health.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			s.grpc.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			s.grpc.Stop()
		}
		return s.app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

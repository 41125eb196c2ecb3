package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/florist-marketplace-service/config"
	"github.com/fekuna/florist-marketplace-service/internal/alert"
	"github.com/fekuna/florist-marketplace-service/internal/listing"
	"github.com/fekuna/florist-marketplace-service/internal/order"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/broker"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/cache"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/logger"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/middleware"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/search"
	"github.com/fekuna/florist-marketplace-service/internal/router"
	"github.com/fekuna/florist-marketplace-service/internal/seed"

	alertH "github.com/fekuna/florist-marketplace-service/internal/alert/handler"
	alertRepoPkg "github.com/fekuna/florist-marketplace-service/internal/alert/repository"
	alertUCPkg "github.com/fekuna/florist-marketplace-service/internal/alert/usecase"

	catalogH "github.com/fekuna/florist-marketplace-service/internal/catalog/handler"
	catalogListenerPkg "github.com/fekuna/florist-marketplace-service/internal/catalog/listener"
	catalogUCPkg "github.com/fekuna/florist-marketplace-service/internal/catalog/usecase"

	listingH "github.com/fekuna/florist-marketplace-service/internal/listing/handler"
	listingRepoPkg "github.com/fekuna/florist-marketplace-service/internal/listing/repository"
	listingUCPkg "github.com/fekuna/florist-marketplace-service/internal/listing/usecase"

	orderH "github.com/fekuna/florist-marketplace-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/florist-marketplace-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/florist-marketplace-service/internal/order/usecase"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

type repositories struct {
	listings listing.Repository
	orders   order.Repository
	acks     alert.Repository
	close    func()
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "run the gRPC and HTTP servers",
		Action: serve,
	}
}

func openRepositories(ctx context.Context, cfg *config.Config, appLogger logger.ZapLogger) (*repositories, error) {
	if cfg.Server.StoreDriver == "memory" {
		listings := listingRepoPkg.NewMemoryRepository()
		n, err := seed.Run(ctx, listings, time.Now().UTC())
		if err != nil {
			return nil, err
		}
		appLogger.Info("Using in-memory store", zap.Int("seeded_listings", n))
		return &repositories{
			listings: listings,
			orders:   orderRepoPkg.NewMemoryRepository(),
			acks:     alertRepoPkg.NewMemoryRepository(),
			close:    func() {},
		}, nil
	}

	db, err := connectPostgres(cfg)
	if err != nil {
		return nil, err
	}
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
	return &repositories{
		listings: listingRepoPkg.NewPGRepository(db),
		orders:   orderRepoPkg.NewPGRepository(db),
		acks:     alertRepoPkg.NewPGRepository(db),
		close:    func() { db.Close() },
	}, nil
}

func serve(c *cli.Context) error {
	// 1. Load Configuration and Logger
	cfg, appLogger, err := loadConfig()
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize Repositories
	repos, err := openRepositories(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Could not open store", zap.Error(err))
	}
	defer repos.close()

	// 3. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis, catalog caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 4. Initialize Kafka
	var publisher broker.Publisher
	var consumer *broker.KafkaConsumer
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.Brokers[0] != "" {
		brokerCfg := &broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		}
		producer := broker.NewProducer(brokerCfg)
		defer producer.Close()
		publisher = producer

		consumer = broker.NewConsumer(brokerCfg)
		defer consumer.Close()
		appLogger.Info("Configured Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 5. Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (Search falls back to catalog filtering)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize UseCases
	catalogUC := catalogUCPkg.NewCatalogUseCase(repos.listings, repos.orders, redisClient, esClient, cfg.Catalog.CacheTTL, appLogger)
	listingUC := listingUCPkg.NewListingUseCase(repos.listings, redisClient, esClient, publisher, appLogger)
	alertUC := alertUCPkg.NewAlertUseCase(repos.listings, repos.acks, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(repos.orders, redisClient, publisher, appLogger)

	// 7. Initialize Handlers
	catalogHandler := catalogH.NewCatalogHandler(catalogUC, appLogger)
	listingHandler := listingH.NewListingHandler(listingUC, appLogger)
	alertHandler := alertH.NewAlertHandler(alertUC, appLogger)
	orderHandler := orderH.NewOrderHandler(orderUC, appLogger)

	// 8. gRPC Server
	grpcPort := cfg.Server.GRPCPort
	if !strings.HasPrefix(grpcPort, ":") {
		grpcPort = ":" + grpcPort
	}
	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		return err
	}

	secret := []byte(cfg.JWT.SecretKey)
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.ContextInterceptor(secret, cfg.Server.AllowMetadataIdentity)),
	)
	catalogHandler.Register(grpcServer)
	listingHandler.Register(grpcServer)
	alertHandler.Register(grpcServer)
	orderHandler.Register(grpcServer)
	reflection.Register(grpcServer)

	// 9. HTTP Server
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	httpPort := cfg.HTTP.Port
	if !strings.HasPrefix(httpPort, ":") {
		httpPort = ":" + httpPort
	}
	httpServer := &http.Server{
		Addr: httpPort,
		Handler: router.New(router.Config{
			JWTSecret:  secret,
			RateLimit:  cfg.HTTP.RateLimit,
			RateBurst:  cfg.HTTP.RateBurst,
			CORSOrigin: cfg.HTTP.CORSOrigin,
		}, router.Handlers{
			Catalog: catalogHandler,
			Listing: listingHandler,
			Alert:   alertHandler,
			Order:   orderHandler,
		}, appLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if consumer != nil {
		catalogListener := catalogListenerPkg.NewCatalogListener(consumer, catalogUC, appLogger)
		g.Go(func() error {
			catalogListener.Start(gctx)
			return nil
		})
	}

	g.Go(func() error {
		appLogger.Info("Starting gRPC server", zap.String("port", grpcPort))
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("port", httpPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		appLogger.Error("Server stopped with error", zap.Error(err))
		return err
	}
	appLogger.Info("Server stopped")
	return nil
}

package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"

	storeserver "github.com/Apurer/go-gin-store-api/go"

	storedirectory "github.com/Apurer/go-gin-store-api/internal/domains/store/adapters/directory"
	storememory "github.com/Apurer/go-gin-store-api/internal/domains/store/adapters/memory"
	storeobs "github.com/Apurer/go-gin-store-api/internal/domains/store/adapters/observability"
	storegorm "github.com/Apurer/go-gin-store-api/internal/domains/store/adapters/persistence/gormdb"
	storeapp "github.com/Apurer/go-gin-store-api/internal/domains/store/application"
	storeports "github.com/Apurer/go-gin-store-api/internal/domains/store/ports"

	usermemory "github.com/Apurer/go-gin-store-api/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/go-gin-store-api/internal/domains/users/adapters/observability"
	usergorm "github.com/Apurer/go-gin-store-api/internal/domains/users/adapters/persistence/gormdb"
	userapp "github.com/Apurer/go-gin-store-api/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-store-api/internal/domains/users/ports"

	"github.com/Apurer/go-gin-store-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-store-api/internal/platform/observability"
	"github.com/Apurer/go-gin-store-api/internal/platform/sqlstore"
	"github.com/Apurer/go-gin-store-api/internal/platform/validation"
)

const serviceName = "store-api"

// Run boots the store HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	if err := LoadEnvFiles(".env"); err != nil {
		return err
	}
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	instruments, shutdownTelemetry, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName:   serviceName,
		Environment:   cfg.Environment,
		LogLevel:      cfg.LogLevel,
		OTLPEndpoint:  cfg.OTLPEndpoint,
		OTLPInsecure:  cfg.OTLPInsecure,
		TraceToStdout: cfg.TraceToStdout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := instruments.Logger
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()

	services, cleanup, err := buildServices(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           newRouter(cfg, services),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("store API listening",
			slog.String("addr", server.Addr),
			slog.String("backend", string(cfg.Backend)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("store API server exited: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down store API", slog.Duration("timeout", cfg.ShutdownTimeout))
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

type services struct {
	users userports.Service
	store storeports.Service
}

// buildServices wires repositories for the configured backend and wraps the
// services with tracing, logging and metrics.
func buildServices(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (services, func(), error) {
	logger := instruments.Logger

	var (
		userRepo  userports.Repository
		storeRepo storeports.Repository
		storeTx   storeports.Transactor
		cleanup   = func() {}
	)
	switch cfg.Backend {
	case BackendSQLite:
		db, err := sqlstore.Open(ctx, sqlstore.MemoryDSN)
		if err != nil {
			return services{}, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		if err := migrations.Run(db); err != nil {
			_ = sqlstore.Close(db)
			return services{}, nil, fmt.Errorf("failed to migrate sqlite: %w", err)
		}
		userRepo = usergorm.NewRepository(db)
		gormStore := storegorm.NewRepository(db)
		storeRepo, storeTx = gormStore, gormStore
		cleanup = func() {
			if err := sqlstore.Close(db); err != nil {
				logger.Error("failed to close sqlite", slog.String("error", err.Error()))
			}
		}
		logger.Info("repositories configured with in-memory sqlite")
	default:
		userRepo = usermemory.NewRepository()
		memStore := storememory.NewRepository()
		storeRepo, storeTx = memStore, memStore
		logger.Info("repositories configured in memory")
	}

	userService := userobs.New(
		userapp.NewService(userRepo),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.domains.users")),
		userobs.WithMeter(instruments.Meter("internal.domains.users")),
	)

	policy := storeapp.VariantPolicyStrict
	if cfg.LenientVariants {
		policy = storeapp.VariantPolicyLenient
	}
	storeService := storeobs.New(
		storeapp.NewService(storeRepo, storeTx, storedirectory.NewUsers(userService), storeapp.WithVariantPolicy(policy)),
		storeobs.WithLogger(logger),
		storeobs.WithTracer(instruments.Tracer("internal.domains.store")),
		storeobs.WithMeter(instruments.Meter("internal.domains.store")),
	)

	return services{users: userService, store: storeService}, cleanup, nil
}

func newRouter(cfg Config, svc services) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	validation.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.GinMode == gin.DebugMode {
		router.Use(gin.Logger())
	}
	router.Use(storeserver.CORS(cfg.CORSOrigins))
	router.Use(otelgin.Middleware(serviceName))

	return storeserver.NewRouterWithGinEngine(router, storeserver.ApiHandleFunctions{
		UserAPI:    storeserver.NewUserAPI(svc.users),
		ProductAPI: storeserver.NewProductAPI(svc.store),
		OrderAPI:   storeserver.NewOrderAPI(svc.store),
	})
}

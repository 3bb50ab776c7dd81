package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"rag-iishka-client/internal/api"
	"rag-iishka-client/internal/api/handlers"
	"rag-iishka-client/internal/client"
	"rag-iishka-client/internal/gateway"
	"rag-iishka-client/internal/service"
	"rag-iishka-client/internal/session"
	"rag-iishka-client/internal/view"
	"rag-iishka-client/pkg/config"
	"rag-iishka-client/pkg/logger"
	"rag-iishka-client/pkg/postgres"
	"rag-iishka-client/pkg/redis"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

const uploadBodyLimit = 32 << 20

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting RAG Iishka web client", zap.String("api", cfg.API.BaseURL))

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open credential store", zap.Error(err))
	}
	defer closeStore()

	// Services
	cache := service.NewResultCache()
	gw := gateway.New(
		cfg.API.BaseURL,
		&http.Client{Timeout: cfg.API.Timeout},
		store,
		appLogger,
		gateway.WithLogoutHook(func(_ context.Context, sessionID string) {
			cache.Forget(sessionID)
		}),
	)
	apiClient := client.New(gw, appLogger)
	authService := service.NewAuthService(apiClient, store, cache, appLogger)
	docService := service.NewDocumentService(apiClient, cache, service.DocumentOptions{
		AutoProcess:      cfg.Client.AutoProcess,
		AutoProcessDelay: cfg.Client.AutoProcessDelay,
	}, appLogger)

	// Handlers
	renderer, err := view.NewRenderer()
	if err != nil {
		appLogger.Fatal("Failed to load templates", zap.Error(err))
	}
	sessions := fibersession.New(fibersession.Config{
		Expiration:     cfg.Session.TTL,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	web := handlers.NewWeb(sessions, renderer, appLogger)
	authHandler := handlers.NewAuthHandler(web, authService, handlers.LoginDefaults{
		Email:    cfg.Client.DefaultLoginEmail,
		Password: cfg.Client.DefaultLoginPassword,
	}, appLogger)
	docHandler := handlers.NewDocumentHandler(web, docService, cfg.Client.DocumentsLimit, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, docHandler, api.Config{
		Sessions:    sessions,
		Credentials: authService,
		RequestLog:  true,
		Fiber: fiber.Config{
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			BodyLimit:    uploadBodyLimit,
		},
	}, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
	docService.Wait()
}

// openStore picks the credential store named by SESSION_STORE.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (session.Store, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreMemory:
		return session.NewMemoryStore(), func() {}, nil

	case config.SessionStoreRedis:
		rdb, err := redis.NewClient(ctx, &cfg.Redis, log)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				log.Warn("Failed to close redis client", zap.Error(err))
			}
		}
		return session.NewRedisStore(rdb, cfg.Session.TTL), closeFn, nil

	case config.SessionStorePostgres:
		db, err := postgres.NewPool(ctx, &cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		store := session.NewPostgresStore(db, log)
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

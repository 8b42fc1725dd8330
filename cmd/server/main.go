package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/redis/go-redis/v9"

	"github.com/shopworks/storefront/internal/config"
	"github.com/shopworks/storefront/internal/database"
	"github.com/shopworks/storefront/internal/handler"
	"github.com/shopworks/storefront/internal/jobs"
	"github.com/shopworks/storefront/internal/middleware"
	"github.com/shopworks/storefront/internal/repository"
	"github.com/shopworks/storefront/internal/service"
	"github.com/shopworks/storefront/pkg/token"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize database connection and schema
	store, err := database.Open(ctx, database.Config{
		Path:      cfg.Database.Path,
		URL:       cfg.Database.URL,
		AuthToken: cfg.Database.AuthToken,
	})
	if err != nil {
		slog.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("database ready",
		slog.String("path", cfg.Database.Path),
		slog.Bool("remote", cfg.Database.URL != ""),
	)

	// Initialize token service
	tokenService, err := token.NewService(token.Config{
		Secret:     cfg.Auth.Secret,
		Issuer:     cfg.Auth.Issuer,
		Expiration: cfg.Auth.SessionTTL,
	})
	if err != nil {
		slog.Error("failed to initialize token service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(store)
	productRepo := repository.NewProductRepository(store)
	orderRepo := repository.NewOrderRepository(store)
	userRepo := repository.NewUserRepository(store)
	sessionRepo := repository.NewSessionRepository(store)

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		Tokens:      tokenService,
	})
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo)

	// Initialize rate limiter over the configured window store
	windowStore, cleanup, err := newWindowStore(cfg.RateLimit)
	if err != nil {
		slog.Error("failed to initialize rate limit store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Store:  windowStore,
		Window: cfg.RateLimit.Window,
		Max:    cfg.RateLimit.Max,
	})

	// Background session cleanup
	sweeper := jobs.NewSessionSweeper(sessionRepo, time.Hour)
	sweeper.Start()
	defer sweeper.Stop()

	// Initialize handlers and routes
	routes := &handler.Routes{
		Customers: handler.NewCustomerHandler(customerService),
		Products:  handler.NewProductHandler(productService),
		Orders:    handler.NewOrderHandler(orderService),
		Auth: handler.NewAuthHandler(handler.AuthHandlerConfig{
			AuthService:  authService,
			SecureCookie: cfg.IsProduction(),
		}),
		Health:       handler.NewHealthHandler(store),
		Authenticate: middleware.Auth(authService),
		RateLimit:    middleware.RateLimit(rateLimiter),
	}

	mux := http.NewServeMux()
	routes.Register(mux)

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		gziphandler.GzipHandler,
	)

	newServer := func(port string) *http.Server {
		return &http.Server{
			Addr:         ":" + port,
			Handler:      wrapped,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  120 * time.Second,
		}
	}

	servers := []*http.Server{newServer(cfg.Server.Port)}

	// Start plaintext server
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := servers[0].ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Start TLS server when a certificate pair is configured
	if cfg.Server.TLSEnabled() {
		tlsServer := newServer(cfg.Server.TLSPort)
		servers = append(servers, tlsServer)
		go func() {
			slog.Info("starting TLS server", slog.String("port", cfg.Server.TLSPort))
			err := tlsServer.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
			if err != nil && err != http.ErrServerClosed {
				slog.Error("TLS server error", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", slog.String("error", err.Error()))
		}
	}

	slog.Info("server exited")
}

// newWindowStore builds the rate limit counter store named by the config.
// The returned cleanup releases whatever the store holds (janitor goroutine
// or Redis connection pool).
func newWindowStore(cfg config.RateLimitConfig) (middleware.WindowStore, func(), error) {
	switch cfg.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		slog.Info("rate limit store ready", slog.String("backend", "redis"), slog.String("addr", cfg.RedisAddr))
		return middleware.NewRedisWindowStore(client), func() { _ = client.Close() }, nil
	default:
		store := middleware.NewMemoryWindowStore(nil)
		return store, store.Stop, nil
	}
}

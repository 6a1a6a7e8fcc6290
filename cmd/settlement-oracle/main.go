package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/bootstrap"
	"github.com/goodnatureofminers/ratrace-oracle/internal/metrics"
	"github.com/goodnatureofminers/ratrace-oracle/internal/transport"
	"github.com/goodnatureofminers/ratrace-oracle/internal/webhook"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type config struct {
	bootstrap.Config

	Addr          string        `long:"addr" env:"RATRACE_ORACLE_ADDR" default:":8080" description:"http listen address"`
	GRPCAddr      string        `long:"grpc-addr" env:"RATRACE_ORACLE_GRPC_ADDR" default:":8081" description:"grpc health listen address"`
	WebhookSecret string        `long:"webhook-secret" env:"RATRACE_WEBHOOK_SECRET" description:"shared webhook signing secret"`
	WebhookMaxAge time.Duration `long:"webhook-max-age" env:"RATRACE_WEBHOOK_MAX_AGE" default:"5m" description:"signature replay window"`
	RedisAddr     string        `long:"redis-addr" env:"RATRACE_REDIS_ADDR" description:"redis address for delivery dedupe, disabled when empty"`
	HealthPeriod  time.Duration `long:"health-period" env:"RATRACE_HEALTH_PERIOD" default:"10s" description:"dependency probe interval"`
}

func (c config) Validate() error {
	err := c.Config.Validate()
	if c.WebhookSecret == "" {
		err = errors.Join(err, errors.New("--webhook-secret is required"))
	}
	return err
}

func main() {
	var cfg config
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger, err := bootstrap.NewLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stack, err := bootstrap.Build(ctx, cfg.Config, logger)
	if err != nil {
		logger.Fatal("Failed to build settlement stack", zap.Error(err))
	}
	defer stack.Close()
	stack.Start(ctx)

	checks := make(map[string]transport.HealthChecker, len(stack.Checks)+1)
	for name, check := range stack.Checks {
		checks[name] = transport.HealthCheckFunc(check)
	}

	var guard transport.ReplayGuard = webhook.NopReplayGuard{}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() {
			_ = client.Close()
		}()
		guard = webhook.NewRedisReplayGuard(client, cfg.WebhookMaxAge)
		checks["redis"] = transport.HealthCheckFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}

	health := transport.NewHealthService("ratrace.SettlementOracle", checks, logger)
	go health.Run(ctx, cfg.HealthPeriod)

	grpcServer := transport.NewGRPCServer(logger, health)
	socket, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("net.Listen error", zap.Error(err))
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("gRPC server stopped", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	handler := transport.NewRouter(transport.RouterConfig{
		Webhook: transport.NewWebhookHandler(
			webhook.NewVerifier([]byte(cfg.WebhookSecret), cfg.WebhookMaxAge),
			guard,
			stack.Driver,
			metrics.NewWebhook(),
			logger,
		),
		Races:  transport.NewRaceHandler(stack.Repo, cfg.TokenDecimals, logger),
		Health: checks,
		Logger: logger,
	})

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", cfg.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}

package bootstrap

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/ratrace-oracle/internal/chain"
	"github.com/goodnatureofminers/ratrace-oracle/internal/metrics"
	"github.com/goodnatureofminers/ratrace-oracle/internal/notify"
	"github.com/goodnatureofminers/ratrace-oracle/internal/repository/clickhouse"
	"github.com/goodnatureofminers/ratrace-oracle/internal/repository/memory"
	"github.com/goodnatureofminers/ratrace-oracle/internal/repository/postgres"
	"github.com/goodnatureofminers/ratrace-oracle/internal/settlement"
	"go.uber.org/zap"
)

// Checker probes a dependency for health reporting.
type Checker func(ctx context.Context) error

// Stack is the wired settlement core.
type Stack struct {
	Repo   settlement.RaceRepository
	Driver *settlement.Driver
	// Checks lists dependency probes by name.
	Checks map[string]Checker

	archive *clickhouse.Archive
	closers []func()
	logger  *zap.Logger
}

// Build connects to every configured dependency and assembles the driver. On
// error, whatever was already opened is closed.
func Build(ctx context.Context, cfg Config, logger *zap.Logger) (_ *Stack, err error) {
	s := &Stack{Checks: map[string]Checker{}, logger: logger}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	switch cfg.Store {
	case StoreMemory:
		logger.Warn("using in-memory race store, state is lost on exit")
		s.Repo = memory.NewRaceStore()
	default:
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pool.Close)
		s.Checks["postgres"] = pool.Ping
		s.Repo = postgres.NewRaceRepository(pool, metrics.NewPostgresRepository())
	}

	client, err := chain.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, client.Close)
	backend := chain.NewObservedBackend(client, metrics.NewRPCClient("ethereum"))
	s.Checks["chain"] = func(ctx context.Context) error {
		_, err := backend.ChainID(ctx)
		return err
	}

	contract, err := chain.NewRaceContract(ctx, backend, chain.RaceContractConfig{
		Address:     cfg.RaceContract,
		PrivateKey:  cfg.PrivateKey,
		GasLimit:    cfg.GasLimit,
		ReceiptPoll: cfg.ReceiptPoll,
	})
	if err != nil {
		return nil, err
	}
	nft, err := chain.NewRatNFT(backend, cfg.RatNFT)
	if err != nil {
		return nil, err
	}

	var publisher settlement.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafka := notify.NewKafkaPublisher(notify.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		s.closers = append(s.closers, func() {
			if err := kafka.Close(); err != nil {
				logger.Warn("close kafka publisher", zap.Error(err))
			}
		})
		publisher = kafka
	}

	var archive settlement.Archive
	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() {
			if err := repo.Close(); err != nil {
				logger.Warn("close clickhouse", zap.Error(err))
			}
		})
		s.archive = clickhouse.NewArchive(repo, clickhouse.ArchiveConfig{
			BatchSize:     cfg.ArchiveBatchSize,
			FlushInterval: cfg.ArchiveFlushInterval,
			RPS:           cfg.ArchiveRPS,
			TokenDecimals: cfg.TokenDecimals,
		}, logger)
		archive = s.archive
	}

	s.Driver, err = settlement.NewDriver(s.Repo, nft, contract, archive, publisher, metrics.NewSettlement(), cfg.DriverConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("build settlement driver: %w", err)
	}

	logger.Info("settlement stack ready",
		zap.String("store", cfg.Store),
		zap.String("signer", contract.Sender()),
		zap.String("role", cfg.Role),
		zap.Bool("notifications", publisher != nil),
		zap.Bool("archive", archive != nil),
	)
	return s, nil
}

// Start launches background workers owned by the stack.
func (s *Stack) Start(ctx context.Context) {
	if s.archive != nil {
		s.archive.Start(ctx)
	}
}

// Close flushes the archive and releases connections in reverse order.
func (s *Stack) Close() {
	if s.archive != nil {
		s.archive.Stop()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

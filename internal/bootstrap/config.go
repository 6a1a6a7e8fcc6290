// Package bootstrap builds the settlement stack shared by the oracle and the
// sweeper binaries.
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/ratrace-oracle/internal/chain"
	"github.com/goodnatureofminers/ratrace-oracle/internal/settlement"
	"go.uber.org/zap"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds the flags both binaries accept.
type Config struct {
	LogJSON bool `long:"log-json" env:"RATRACE_LOG_JSON" description:"emit JSON logs"`

	Store       string `long:"store" env:"RATRACE_STORE" default:"postgres" choice:"postgres" choice:"memory" description:"race store backend"`
	PostgresDSN string `long:"postgres-dsn" env:"RATRACE_POSTGRES_DSN" description:"postgres dsn"`

	RPCURL       string        `long:"rpc-url" env:"RATRACE_RPC_URL" description:"EVM JSON-RPC endpoint"`
	RaceContract string        `long:"race-contract" env:"RATRACE_RACE_CONTRACT" description:"race contract address"`
	RatNFT       string        `long:"rat-nft" env:"RATRACE_RAT_NFT" description:"rat NFT contract address"`
	PrivateKey   string        `long:"oracle-private-key" env:"RATRACE_ORACLE_PRIVATE_KEY" description:"hex private key of the settlement signer"`
	GasLimit     uint64        `long:"gas-limit" env:"RATRACE_GAS_LIMIT" description:"fixed gas limit, 0 estimates"`
	ReceiptPoll  time.Duration `long:"receipt-poll" env:"RATRACE_RECEIPT_POLL" default:"2s" description:"receipt polling interval"`
	Role         string        `long:"settle-role" env:"RATRACE_SETTLE_ROLE" default:"oracle" choice:"oracle" choice:"any" description:"who may call finishRace"`

	SettlementDelay       time.Duration `long:"settlement-delay" env:"RATRACE_SETTLEMENT_DELAY" default:"0s" description:"defer settlement after results are stored"`
	ChainTimeout          time.Duration `long:"chain-timeout" env:"RATRACE_CHAIN_TIMEOUT" default:"30s" description:"timeout for a single chain call"`
	ConfirmTimeout        time.Duration `long:"confirm-timeout" env:"RATRACE_CONFIRM_TIMEOUT" default:"0s" description:"wait for the settlement receipt inline, 0 disables"`
	ClaimLease            time.Duration `long:"claim-lease" env:"RATRACE_CLAIM_LEASE" default:"2m" description:"settlement claim lease"`
	MaxSettlementAttempts int           `long:"max-settlement-attempts" env:"RATRACE_MAX_SETTLEMENT_ATTEMPTS" default:"5" description:"give up automatic settlement after this many failures"`
	StoreReadAttempts     int           `long:"store-read-attempts" env:"RATRACE_STORE_READ_ATTEMPTS" default:"3" description:"attempts for transient store reads"`
	StoreReadBackoff      time.Duration `long:"store-read-backoff" env:"RATRACE_STORE_READ_BACKOFF" default:"200ms" description:"base backoff between store reads"`

	KafkaBrokers []string `long:"kafka-broker" env:"RATRACE_KAFKA_BROKERS" env-delim:"," description:"kafka broker, notifications are disabled when empty"`
	KafkaTopic   string   `long:"kafka-topic" env:"RATRACE_KAFKA_TOPIC" default:"ratrace.races" description:"notification topic"`

	ClickhouseDSN        string        `long:"clickhouse-dsn" env:"RATRACE_CLICKHOUSE_DSN" description:"clickhouse dsn, the results archive is disabled when empty"`
	ArchiveBatchSize     int           `long:"archive-batch-size" env:"RATRACE_ARCHIVE_BATCH_SIZE" default:"600" description:"archive rows per insert"`
	ArchiveFlushInterval time.Duration `long:"archive-flush-interval" env:"RATRACE_ARCHIVE_FLUSH_INTERVAL" default:"5s" description:"archive flush interval"`
	ArchiveRPS           int           `long:"archive-rps" env:"RATRACE_ARCHIVE_RPS" default:"10" description:"archive inserts per second"`
	TokenDecimals        int32         `long:"token-decimals" env:"RATRACE_TOKEN_DECIMALS" default:"18" description:"entry token decimals"`
}

// Validate reports every missing or invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StorePostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			errs = append(errs, errors.New("--postgres-dsn is required"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}
	if strings.TrimSpace(c.RPCURL) == "" {
		errs = append(errs, errors.New("--rpc-url is required"))
	}
	if !common.IsHexAddress(c.RaceContract) {
		errs = append(errs, fmt.Errorf("--race-contract %q is not an address", c.RaceContract))
	}
	if !common.IsHexAddress(c.RatNFT) {
		errs = append(errs, fmt.Errorf("--rat-nft %q is not an address", c.RatNFT))
	}
	if _, err := chain.ParsePrivateKey(c.PrivateKey); err != nil {
		errs = append(errs, fmt.Errorf("--oracle-private-key: %w", err))
	}
	if c.MaxSettlementAttempts < 1 {
		errs = append(errs, errors.New("--max-settlement-attempts must be positive"))
	}
	if c.TokenDecimals < 0 || c.TokenDecimals > 77 {
		errs = append(errs, fmt.Errorf("--token-decimals %d out of range", c.TokenDecimals))
	}
	return errors.Join(errs...)
}

// DriverConfig maps the flags onto settlement.Config.
func (c Config) DriverConfig() settlement.Config {
	return settlement.Config{
		SettlementDelay:   c.SettlementDelay,
		ChainTimeout:      c.ChainTimeout,
		ConfirmTimeout:    c.ConfirmTimeout,
		ClaimLease:        c.ClaimLease,
		MaxAttempts:       c.MaxSettlementAttempts,
		StoreReadAttempts: c.StoreReadAttempts,
		StoreReadBackoff:  c.StoreReadBackoff,
		Role:              settlement.Role(c.Role),
	}
}

// NewLogger builds the process logger.
func NewLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

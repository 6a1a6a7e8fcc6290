package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/goodnatureofminers/ratrace-oracle/internal/clock"
	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
)

var (
	// ErrInvalidPositions rejects a finish order the contract would revert on.
	ErrInvalidPositions = errors.New("positions must list six distinct rats")
	// ErrReceiptNotFound means the node has no receipt for the transaction.
	ErrReceiptNotFound = errors.New("receipt not found")
)

// DefaultReceiptPoll is how often WaitMined asks for a receipt.
const DefaultReceiptPoll = 2 * time.Second

// RaceContract signs and submits oracle transactions to the race contract.
type RaceContract struct {
	backend  Backend
	contract *bind.BoundContract
	address  common.Address
	key      *ecdsa.PrivateKey
	from     common.Address
	chainID  *big.Int
	gasLimit uint64
	poll     time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// RaceContractConfig describes how to reach and sign for the race contract.
type RaceContractConfig struct {
	Address    string
	PrivateKey string
	// GasLimit fixes the gas limit. Zero estimates it per transaction.
	GasLimit    uint64
	ReceiptPoll time.Duration
}

// NewRaceContract binds the race contract at cfg.Address. The chain id is read
// once from the node.
func NewRaceContract(ctx context.Context, backend Backend, cfg RaceContractConfig) (*RaceContract, error) {
	if !common.IsHexAddress(cfg.Address) {
		return nil, fmt.Errorf("invalid race contract address %q", cfg.Address)
	}
	key, err := ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("get chain id: %w", err)
	}

	address := common.HexToAddress(cfg.Address)
	poll := cfg.ReceiptPoll
	if poll <= 0 {
		poll = DefaultReceiptPoll
	}
	return &RaceContract{
		backend:  backend,
		contract: bind.NewBoundContract(address, raceABI, backend, backend, backend),
		address:  address,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		chainID:  chainID,
		gasLimit: cfg.GasLimit,
		poll:     poll,
		sleep:    clock.SleepWithContext,
	}, nil
}

// ParsePrivateKey accepts a hex secp256k1 key with or without 0x.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse oracle private key: %w", err)
	}
	return key, nil
}

// Sender returns the address transactions are signed with.
func (c *RaceContract) Sender() string {
	return c.from.Hex()
}

// Oracle reads the address the contract accepts results from.
func (c *RaceContract) Oracle(ctx context.Context) (string, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "oracle"); err != nil {
		return "", fmt.Errorf("call oracle(): %w", err)
	}
	if len(out) != 1 {
		return "", fmt.Errorf("oracle(): unexpected %d outputs", len(out))
	}
	addr, ok := out[0].(common.Address)
	if !ok {
		return "", fmt.Errorf("oracle(): unexpected output %T", out[0])
	}
	return addr.Hex(), nil
}

// FinishRace submits finishRace(raceId, positions) and returns the
// transaction hash without waiting for it to be mined.
func (c *RaceContract) FinishRace(ctx context.Context, raceID uint64, positions []uint64) (string, error) {
	if err := validatePositions(positions); err != nil {
		return "", err
	}
	ids := make([]*big.Int, len(positions))
	for i, p := range positions {
		ids[i] = new(big.Int).SetUint64(p)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return "", fmt.Errorf("build transactor: %w", err)
	}
	opts.Context = ctx
	opts.GasLimit = c.gasLimit

	tx, err := c.contract.Transact(opts, "finishRace", new(big.Int).SetUint64(raceID), ids)
	if err != nil {
		return "", fmt.Errorf("send finishRace(%d): %w", raceID, err)
	}
	return tx.Hash().Hex(), nil
}

// WaitMined polls for the receipt of txHash until it appears or ctx ends. It
// reports whether the transaction succeeded.
func (c *RaceContract) WaitMined(ctx context.Context, txHash string) (bool, error) {
	hash, err := parseTxHash(txHash)
	if err != nil {
		return false, err
	}
	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			return receipt.Status == types.ReceiptStatusSuccessful, nil
		case !errors.Is(err, ethereum.NotFound):
			return false, fmt.Errorf("get receipt %s: %w", txHash, err)
		}
		if err := c.sleep(ctx, c.poll); err != nil {
			return false, err
		}
	}
}

// BlockHashOf returns the hash of the block that included txHash.
func (c *RaceContract) BlockHashOf(ctx context.Context, txHash string) (string, error) {
	hash, err := parseTxHash(txHash)
	if err != nil {
		return "", err
	}
	receipt, err := c.backend.TransactionReceipt(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return "", fmt.Errorf("%w: %s", ErrReceiptNotFound, txHash)
		}
		return "", fmt.Errorf("get receipt %s: %w", txHash, err)
	}
	return receipt.BlockHash.Hex(), nil
}

func validatePositions(positions []uint64) error {
	if len(positions) != model.RaceSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPositions, len(positions))
	}
	seen := make(map[uint64]struct{}, len(positions))
	for _, p := range positions {
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: rat %d repeated", ErrInvalidPositions, p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

func parseTxHash(txHash string) (common.Hash, error) {
	raw := strings.TrimPrefix(txHash, "0x")
	if len(raw) != 2*common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid transaction hash %q", txHash)
	}
	return common.HexToHash(txHash), nil
}

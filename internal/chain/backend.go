// Package chain talks to the race and rat NFT contracts over JSON-RPC.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

type (
	// Backend is the subset of an Ethereum client the contracts use.
	Backend interface {
		bind.ContractBackend
		TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
		ChainID(ctx context.Context) (*big.Int, error)
	}

	// RPCMetrics records node call outcomes.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Dial connects to an Ethereum JSON-RPC endpoint.
func Dial(ctx context.Context, url string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial rpc %s: %w", url, err)
	}
	return client, nil
}

// ObservedBackend records a metric for every node call it forwards.
type ObservedBackend struct {
	backend    Backend
	rpcMetrics RPCMetrics
}

// NewObservedBackend wraps backend.
func NewObservedBackend(backend Backend, rpcMetrics RPCMetrics) *ObservedBackend {
	return &ObservedBackend{backend: backend, rpcMetrics: rpcMetrics}
}

func (o *ObservedBackend) observe(operation string, err error, started time.Time) {
	o.rpcMetrics.Observe(operation, err, started)
}

func (o *ObservedBackend) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) (code []byte, err error) {
	started := time.Now()
	defer func() { o.observe("eth_getCode", err, started) }()
	return o.backend.CodeAt(ctx, contract, blockNumber)
}

func (o *ObservedBackend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) (out []byte, err error) {
	started := time.Now()
	defer func() { o.observe("eth_call", err, started) }()
	return o.backend.CallContract(ctx, call, blockNumber)
}

func (o *ObservedBackend) HeaderByNumber(ctx context.Context, number *big.Int) (header *types.Header, err error) {
	started := time.Now()
	defer func() { o.observe("eth_getBlockByNumber", err, started) }()
	return o.backend.HeaderByNumber(ctx, number)
}

func (o *ObservedBackend) PendingCodeAt(ctx context.Context, account common.Address) (code []byte, err error) {
	started := time.Now()
	defer func() { o.observe("eth_getCode_pending", err, started) }()
	return o.backend.PendingCodeAt(ctx, account)
}

func (o *ObservedBackend) PendingNonceAt(ctx context.Context, account common.Address) (nonce uint64, err error) {
	started := time.Now()
	defer func() { o.observe("eth_getTransactionCount", err, started) }()
	return o.backend.PendingNonceAt(ctx, account)
}

func (o *ObservedBackend) SuggestGasPrice(ctx context.Context) (price *big.Int, err error) {
	started := time.Now()
	defer func() { o.observe("eth_gasPrice", err, started) }()
	return o.backend.SuggestGasPrice(ctx)
}

func (o *ObservedBackend) SuggestGasTipCap(ctx context.Context) (tip *big.Int, err error) {
	started := time.Now()
	defer func() { o.observe("eth_maxPriorityFeePerGas", err, started) }()
	return o.backend.SuggestGasTipCap(ctx)
}

func (o *ObservedBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (gas uint64, err error) {
	started := time.Now()
	defer func() { o.observe("eth_estimateGas", err, started) }()
	return o.backend.EstimateGas(ctx, call)
}

func (o *ObservedBackend) SendTransaction(ctx context.Context, tx *types.Transaction) (err error) {
	started := time.Now()
	defer func() { o.observe("eth_sendRawTransaction", err, started) }()
	return o.backend.SendTransaction(ctx, tx)
}

func (o *ObservedBackend) FilterLogs(ctx context.Context, query ethereum.FilterQuery) (logs []types.Log, err error) {
	started := time.Now()
	defer func() { o.observe("eth_getLogs", err, started) }()
	return o.backend.FilterLogs(ctx, query)
}

func (o *ObservedBackend) SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (sub ethereum.Subscription, err error) {
	started := time.Now()
	defer func() { o.observe("eth_subscribe_logs", err, started) }()
	return o.backend.SubscribeFilterLogs(ctx, query, ch)
}

func (o *ObservedBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (receipt *types.Receipt, err error) {
	started := time.Now()
	defer func() {
		// A missing receipt is the normal answer while a transaction is pending.
		if errors.Is(err, ethereum.NotFound) {
			o.observe("eth_getTransactionReceipt", nil, started)
			return
		}
		o.observe("eth_getTransactionReceipt", err, started)
	}()
	return o.backend.TransactionReceipt(ctx, txHash)
}

func (o *ObservedBackend) ChainID(ctx context.Context) (id *big.Int, err error) {
	started := time.Now()
	defer func() { o.observe("eth_chainId", err, started) }()
	return o.backend.ChainID(ctx)
}

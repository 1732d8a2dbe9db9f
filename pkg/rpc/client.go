package rpc

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
)

// EthClient is the slice of the node API the indexer reads from.
type EthClient interface {
	// Close closes the RPC client connection.
	Close()

	// BlockNumber returns the current head of the chain.
	BlockNumber(ctx context.Context) (uint64, error)

	// GetLogs retrieves logs matching the given filter query.
	GetLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)

	// SubscribeLogs opens a push subscription for logs matching query. Each call uses a
	// fresh connection, so a failed subscription can be retried by calling it again.
	SubscribeLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error)
}

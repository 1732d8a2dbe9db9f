package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/goran-ethernal/TicketIndexor/pkg/config"
	pkgrpc "github.com/goran-ethernal/TicketIndexor/pkg/rpc"
)

// Compile-time check to ensure Client implements pkgrpc.EthClient interface.
var _ pkgrpc.EthClient = (*Client)(nil)

// Client reads over HTTP and subscribes over WebSocket.
type Client struct {
	http  *ethclient.Client
	wsURL string
	retry *config.RetryConfig
}

// NewClient dials the HTTP endpoint. The WebSocket endpoint is dialed per subscription.
func NewClient(ctx context.Context, httpURL, wsURL string, retry *config.RetryConfig) (*Client, error) {
	var eth *ethclient.Client
	err := retryWithBackoff(ctx, retry, "dial", func() error {
		var err error
		eth, err = ethclient.DialContext(ctx, httpURL)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", httpURL, err)
	}

	return &Client{http: eth, wsURL: wsURL, retry: retry}, nil
}

// Close closes the HTTP connection.
func (c *Client) Close() {
	c.http.Close()
}

// Backend exposes the HTTP client for contract bindings.
func (c *Client) Backend() bind.ContractBackend {
	return c.http
}

// BlockNumber returns the most recent block number.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var head uint64
	err := c.call(ctx, "eth_blockNumber", func() error {
		var err error
		head, err = c.http.BlockNumber(ctx)
		return err
	})
	return head, err
}

// GetLogs retrieves logs matching the given filter query.
func (c *Client) GetLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	var logs []types.Log
	err := c.call(ctx, "eth_getLogs", func() error {
		var err error
		logs, err = c.http.FilterLogs(ctx, query)
		return err
	})
	return logs, err
}

// SubscribeLogs dials the WebSocket endpoint and subscribes to logs. Unsubscribing
// also closes the connection.
func (c *Client) SubscribeLogs(
	ctx context.Context,
	query ethereum.FilterQuery,
	ch chan<- types.Log,
) (ethereum.Subscription, error) {
	start := time.Now()
	RPCMethodInc("eth_subscribe")
	defer func() { RPCMethodDuration("eth_subscribe", time.Since(start)) }()

	ws, err := ethclient.DialContext(ctx, c.wsURL)
	if err != nil {
		RPCMethodError("eth_subscribe", "dial")
		return nil, fmt.Errorf("failed to dial %s: %w", c.wsURL, err)
	}

	sub, err := ws.SubscribeFilterLogs(ctx, query, ch)
	if err != nil {
		ws.Close()
		RPCMethodError("eth_subscribe", errorType(err))
		return nil, err
	}

	return &wsSubscription{Subscription: sub, client: ws}, nil
}

func (c *Client) call(ctx context.Context, method string, fn func() error) error {
	start := time.Now()
	RPCMethodInc(method)

	err := retryWithBackoff(ctx, c.retry, method, fn)

	RPCMethodDuration(method, time.Since(start))
	if err != nil {
		RPCMethodError(method, errorType(err))
	}
	return err
}

func errorType(err error) string {
	if ok, _ := IsTooManyResultsError(err); ok {
		return "too_many_results"
	}
	if retryableError(err) {
		return "transient"
	}
	return "other"
}

type wsSubscription struct {
	ethereum.Subscription
	client *ethclient.Client
}

func (s *wsSubscription) Unsubscribe() {
	s.Subscription.Unsubscribe()
	s.client.Close()
}

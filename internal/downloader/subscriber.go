package downloader

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/internal/metrics"
	irpc "github.com/goran-ethernal/TicketIndexor/internal/rpc"
	pkgrpc "github.com/goran-ethernal/TicketIndexor/pkg/rpc"
)

const subscriptionBuffer = 256

var errSubscriptionClosed = errors.New("subscription closed by the node")

type emitFunc func(context.Context, types.Log) error

// Subscriber keeps a live log subscription open, reconnecting with a fixed backoff.
// After every reconnect it scans the blocks it may have missed while disconnected.
type Subscriber struct {
	rpc     pkgrpc.EthClient
	fetcher *LogFetcher
	query   ethereum.FilterQuery
	backoff time.Duration
	log     *logger.Logger

	subscribed atomic.Bool

	// Logs are held until release is closed so that they queue behind the historical scan.
	release  <-chan struct{}
	released bool
	held     []types.Log
	emit     emitFunc
	lastSeen uint64
}

// NewSubscriber creates a new Subscriber instance.
func NewSubscriber(rpcClient pkgrpc.EthClient, fetcher *LogFetcher, addresses []ethcommon.Address,
	topics []ethcommon.Hash, backoff time.Duration, log *logger.Logger) *Subscriber {
	return &Subscriber{
		rpc:     rpcClient,
		fetcher: fetcher,
		query:   logFilter(addresses, topics),
		backoff: backoff,
		log:     log.WithComponent(common.ComponentSubscriber),
	}
}

// Subscribed reports whether a subscription is currently open.
func (s *Subscriber) Subscribed() bool {
	return s.subscribed.Load()
}

// Run streams live logs to emit until ctx is done. The chain head read right after
// the first subscription is sent on firstHead. Logs are held back until release is
// closed.
func (s *Subscriber) Run(ctx context.Context, firstHead chan<- uint64, release <-chan struct{}, emit emitFunc) error {
	s.release, s.emit = release, emit

	for first := true; ; first = false {
		ch := make(chan types.Log, subscriptionBuffer)

		var sub ethereum.Subscription
		err := irpc.RetryForever(ctx, s.log, s.backoff, "subscribe_logs", func(ctx context.Context) error {
			var err error
			sub, err = s.rpc.SubscribeLogs(ctx, s.query, ch)
			return err
		})
		if err != nil {
			return err
		}

		var head uint64
		err = irpc.RetryForever(ctx, s.log, s.backoff, "block_number", func(ctx context.Context) error {
			var err error
			head, err = s.rpc.BlockNumber(ctx)
			return err
		})
		if err != nil {
			sub.Unsubscribe()
			return err
		}
		s.subscribed.Store(true)
		metrics.ComponentHealthSet(common.ComponentSubscriber, true)

		if first {
			s.log.Infow("subscribed to contract logs", "head", head)
			firstHead <- head
		} else if err := s.catchUp(ctx, head); err != nil {
			sub.Unsubscribe()
			return err
		}
		s.lastSeen = max(s.lastSeen, head)

		err = s.stream(ctx, sub, ch)
		sub.Unsubscribe()
		s.subscribed.Store(false)
		metrics.ComponentHealthSet(common.ComponentSubscriber, false)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		SubscriptionReconnectInc()
		metrics.ErrorsInc(common.ComponentSubscriber, metrics.SeverityWarn)
		s.log.Errorw("log subscription lost, reconnecting", "error", err, "backoff", s.backoff, "last_seen", s.lastSeen)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.backoff):
		}
	}
}

// catchUp scans the blocks between the last one seen and the head at reconnect.
func (s *Subscriber) catchUp(ctx context.Context, head uint64) error {
	if s.lastSeen > head {
		return nil
	}

	s.log.Infow("resubscribed, catching up", "from_block", s.lastSeen, "to_block", head)
	return irpc.RetryForever(ctx, s.log, s.backoff, "catch_up", func(ctx context.Context) error {
		return s.fetcher.FetchRange(ctx, s.lastSeen, head, s.deliver)
	})
}

func (s *Subscriber) stream(ctx context.Context, sub ethereum.Subscription, ch <-chan types.Log) error {
	release := s.release
	if s.released {
		release = nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			if err == nil {
				err = errSubscriptionClosed
			}
			return errors.Join(err, s.flushBuffered(ctx, ch))
		case <-release:
			release = nil
			if err := s.flush(ctx); err != nil {
				return err
			}
		case l := <-ch:
			if l.Removed {
				s.log.Debugw("ignoring removed log", "tx_hash", l.TxHash.Hex(), "log_index", l.Index)
				continue
			}
			s.lastSeen = max(s.lastSeen, l.BlockNumber)
			if err := s.deliver(ctx, l); err != nil {
				return err
			}
		}
	}
}

// flushBuffered delivers the logs a dropped subscription had already received.
func (s *Subscriber) flushBuffered(ctx context.Context, ch <-chan types.Log) error {
	for {
		select {
		case l := <-ch:
			if l.Removed {
				continue
			}
			s.lastSeen = max(s.lastSeen, l.BlockNumber)
			if err := s.deliver(ctx, l); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (s *Subscriber) deliver(ctx context.Context, l types.Log) error {
	if !s.released {
		select {
		case <-s.release:
			if err := s.flush(ctx); err != nil {
				return err
			}
		default:
			s.held = append(s.held, l)
			return nil
		}
	}
	return s.emit(ctx, l)
}

func (s *Subscriber) flush(ctx context.Context) error {
	s.released = true
	if len(s.held) > 0 {
		s.log.Infow("releasing live logs received during the historical scan", "count", len(s.held))
	}
	for len(s.held) > 0 {
		if err := s.emit(ctx, s.held[0]); err != nil {
			return err
		}
		s.held = s.held[1:]
	}
	s.held = nil
	return nil
}

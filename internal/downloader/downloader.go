package downloader

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	irpc "github.com/goran-ethernal/TicketIndexor/internal/rpc"
	"github.com/goran-ethernal/TicketIndexor/pkg/config"
	pkgdownloader "github.com/goran-ethernal/TicketIndexor/pkg/downloader"
	pkgrpc "github.com/goran-ethernal/TicketIndexor/pkg/rpc"
	"golang.org/x/sync/errgroup"
)

var _ pkgdownloader.Downloader = (*Downloader)(nil)

var errShutdown = errors.New("worker stopped before the log was processed")

// Options are the command line overrides of the ingestion start.
type Options struct {
	// FromBlock replaces the checkpoint as the start of the historical scan
	FromBlock *uint64

	// NoSync skips the historical scan
	NoSync bool
}

// Downloader feeds a single bounded FIFO queue from the historical scan, the live
// subscription and the quarantine, and drains it with one consumer.
type Downloader struct {
	cfg         config.IndexerConfig
	opts        Options
	fetcher     *LogFetcher
	subscriber  *Subscriber
	processor   *Processor
	syncManager pkgdownloader.SyncManager
	quarantine  pkgdownloader.Quarantine
	log         *logger.Logger

	queue      chan types.Log
	backfilled atomic.Bool
}

// New creates a new Downloader instance.
func New(
	cfg config.IndexerConfig,
	addresses []ethcommon.Address,
	rpcClient pkgrpc.EthClient,
	processor *Processor,
	syncManager pkgdownloader.SyncManager,
	quarantine pkgdownloader.Quarantine,
	log *logger.Logger,
	opts Options,
) (*Downloader, error) {
	if rpcClient == nil {
		return nil, errors.New("RPC client is required")
	}
	if processor == nil {
		return nil, errors.New("processor is required")
	}
	if len(addresses) == 0 {
		return nil, errors.New("at least one contract address is required")
	}
	if cfg.QueueSize <= 0 {
		return nil, fmt.Errorf("invalid queue size %d", cfg.QueueSize)
	}

	topics := processor.Topics()
	fetcher := NewLogFetcher(rpcClient, addresses, topics, cfg.ChunkSize, log)

	d := &Downloader{
		cfg:         cfg,
		opts:        opts,
		fetcher:     fetcher,
		subscriber:  NewSubscriber(rpcClient, fetcher, addresses, topics, cfg.ReconnectBackoff.Duration, log),
		processor:   processor,
		syncManager: syncManager,
		quarantine:  quarantine,
		log:         log.WithComponent(common.ComponentDownloader),
		queue:       make(chan types.Log, cfg.QueueSize),
	}

	d.log.Infow("downloader initialized", "contracts", len(addresses), "event_topics", len(topics),
		"queue_size", cfg.QueueSize)

	return d, nil
}

// Download runs the consumer, re-enqueues the quarantine, then starts the live
// subscription and the historical scan. When ctx is cancelled it waits for the
// producers to stop and moves whatever is still queued to the quarantine.
func (d *Downloader) Download(ctx context.Context) error {
	start, err := d.startBlock()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.consume(gctx) })

	if _, err := d.ReplayQuarantine(gctx); err != nil {
		cancel()
		_ = g.Wait()
		d.drain()
		return fmt.Errorf("failed to re-enqueue quarantine: %w", err)
	}

	firstHead := make(chan uint64, 1)
	release := make(chan struct{})

	g.Go(func() error {
		return d.subscriber.Run(gctx, firstHead, release, d.emitter(sourceLive))
	})

	g.Go(func() error {
		if d.opts.NoSync {
			d.log.Info("historical scan disabled")
		} else if err := d.backfill(gctx, start, firstHead); err != nil {
			return err
		}
		d.backfilled.Store(true)
		close(release)
		return nil
	})

	err = g.Wait()
	d.drain()

	if errors.Is(err, context.Canceled) {
		d.log.Info("download cancelled")
	}
	return err
}

func (d *Downloader) startBlock() (uint64, error) {
	if d.opts.FromBlock != nil {
		d.log.Infow("starting from block override", "start_block", *d.opts.FromBlock)
		return *d.opts.FromBlock, nil
	}

	last, err := d.syncManager.GetLastBlock()
	if err != nil {
		return 0, err
	}
	if last == 0 {
		d.log.Infow("starting fresh download", "start_block", d.cfg.StartBlock)
		return d.cfg.StartBlock, nil
	}

	// the checkpoint block is scanned again since it may have been observed only in part
	d.log.Infow("resuming download", "last_block", last)
	return last, nil
}

// backfill scans [start, head] where head is read right after the first subscription,
// so everything later is delivered live. A failed scan resumes from the last block
// it emitted.
func (d *Downloader) backfill(ctx context.Context, start uint64, firstHead <-chan uint64) error {
	var head uint64
	select {
	case <-ctx.Done():
		return ctx.Err()
	case head = <-firstHead:
	}

	if start > head {
		d.log.Infow("nothing to backfill", "start_block", start, "head", head)
		return nil
	}

	next := start
	enqueue := d.emitter(sourceHistorical)
	err := irpc.RetryForever(ctx, d.log, d.cfg.ReconnectBackoff.Duration, "historical_scan", func(ctx context.Context) error {
		return d.fetcher.FetchRange(ctx, next, head, func(ctx context.Context, l types.Log) error {
			if err := enqueue(ctx, l); err != nil {
				return err
			}
			next = l.BlockNumber
			return nil
		})
	})
	if err != nil {
		return err
	}

	d.log.Infow("historical scan complete", "from_block", start, "to_block", head)
	return nil
}

func (d *Downloader) emitter(source string) emitFunc {
	return func(ctx context.Context, l types.Log) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d.queue <- l:
			LogsReceivedInc(source)
			QueueDepthLog(len(d.queue))
			return nil
		}
	}
}

func (d *Downloader) consume(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l := <-d.queue:
			QueueDepthLog(len(d.queue))
			if err := d.processor.Process(ctx, l); err != nil {
				d.log.Errorw("failed to record log outcome",
					"tx_hash", l.TxHash.Hex(), "log_index", l.Index, "block", l.BlockNumber, "error", err)
			}
		}
	}
}

// drain moves queued logs to the quarantine. It runs after every producer has stopped.
func (d *Downloader) drain() {
	drained := 0
	for {
		select {
		case l := <-d.queue:
			if err := d.quarantine.Put(l, errShutdown); err != nil {
				d.log.Errorw("failed to quarantine queued log", "tx_hash", l.TxHash.Hex(), "error", err)
				continue
			}
			if err := d.syncManager.Advance(l.BlockNumber); err != nil {
				d.log.Errorw("failed to save checkpoint", "block", l.BlockNumber, "error", err)
			}
			LogsProcessedInc(outcomeDrained)
			drained++
		default:
			QueueDepthLog(0)
			if drained > 0 {
				d.log.Infow("queued logs moved to quarantine", "count", drained)
			}
			return
		}
	}
}

// ReplayQuarantine enqueues every quarantined log.
func (d *Downloader) ReplayQuarantine(ctx context.Context) (int, error) {
	logs, err := d.quarantine.Logs()
	if err != nil {
		return 0, err
	}

	enqueue := d.emitter(sourceQuarantine)
	for i, l := range logs {
		if err := enqueue(ctx, l); err != nil {
			return i, err
		}
	}

	if len(logs) > 0 {
		d.log.Infow("quarantined logs re-enqueued", "count", len(logs))
	}
	return len(logs), nil
}

// Status reports the ingestion progress.
func (d *Downloader) Status() (*pkgdownloader.Status, error) {
	last, err := d.syncManager.GetLastBlock()
	if err != nil {
		return nil, err
	}
	quarantined, err := d.quarantine.Count()
	if err != nil {
		return nil, err
	}

	return &pkgdownloader.Status{
		LastBlock:   last,
		QueueDepth:  len(d.queue),
		QueueSize:   cap(d.queue),
		Quarantined: quarantined,
		Subscribed:  d.subscriber.Subscribed(),
		Backfilled:  d.backfilled.Load(),
	}, nil
}

package downloader

import (
	"context"
	"errors"
	"fmt"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/decoder"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/internal/metrics"
	pkgdownloader "github.com/goran-ethernal/TicketIndexor/pkg/downloader"
)

// Projector applies a decoded event to the database.
type Projector interface {
	Apply(ctx context.Context, ev decoder.Event) error
}

// Processor runs one log through decoding and projection and records the outcome.
type Processor struct {
	decoder    *decoder.Decoder
	projector  Projector
	quarantine pkgdownloader.Quarantine
	sync       pkgdownloader.SyncManager
	log        *logger.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(
	dec *decoder.Decoder,
	projector Projector,
	quarantine pkgdownloader.Quarantine,
	syncManager pkgdownloader.SyncManager,
	log *logger.Logger,
) *Processor {
	return &Processor{
		decoder:    dec,
		projector:  projector,
		quarantine: quarantine,
		sync:       syncManager,
		log:        log.WithComponent(common.ComponentProcessor),
	}
}

// Topics returns the event signatures the processor can decode.
func (p *Processor) Topics() []ethcommon.Hash {
	if p.decoder == nil {
		return nil
	}
	return p.decoder.Topics()
}

// Process decodes and projects l. A projection failure is quarantined rather than
// returned, and the checkpoint advances to the log's block in every case. The
// returned error reports a failure to record the outcome.
func (p *Processor) Process(ctx context.Context, l types.Log) error {
	outcome, err := p.apply(ctx, l)

	var recordErr error
	switch outcome {
	case outcomeQuarantined:
		recordErr = p.quarantine.Put(l, err)
	default:
		recordErr = p.quarantine.Remove(l.TxHash, l.Index)
	}
	LogsProcessedInc(outcome)

	if err := p.sync.Advance(l.BlockNumber); err != nil {
		return errors.Join(recordErr, err)
	}
	return recordErr
}

func (p *Processor) apply(ctx context.Context, l types.Log) (string, error) {
	ev, err := p.decoder.Decode(l)
	if errors.Is(err, decoder.ErrNotRecognized) {
		p.log.Warnw("discarding unrecognized log",
			"contract", l.Address.Hex(), "tx_hash", l.TxHash.Hex(), "log_index", l.Index)
		return outcomeNotRecognized, nil
	}
	if err != nil {
		return outcomeQuarantined, err
	}

	start := time.Now()
	err = p.projector.Apply(ctx, ev)
	metrics.ProjectionDuration(ev.EventName(), time.Since(start))
	if err != nil {
		metrics.ErrorsInc(common.ComponentProjector, metrics.SeverityError)
		return outcomeQuarantined, fmt.Errorf("%s: %w", ev.EventName(), err)
	}

	p.log.Debugw("log projected", "event", ev.EventName(), "block", l.BlockNumber, "log_index", l.Index)
	return outcomeProjected, nil
}

// Replay processes every quarantined log once, in block order, and returns how
// many were recovered and how many failed again.
func (p *Processor) Replay(ctx context.Context) (recovered, failed int, err error) {
	logs, err := p.quarantine.Logs()
	if err != nil {
		return 0, 0, err
	}

	for _, l := range logs {
		if err := ctx.Err(); err != nil {
			return recovered, failed, err
		}

		outcome, applyErr := p.apply(ctx, l)
		if outcome == outcomeQuarantined {
			failed++
			if err := p.quarantine.Put(l, applyErr); err != nil {
				return recovered, failed, err
			}
		} else {
			recovered++
			if err := p.quarantine.Remove(l.TxHash, l.Index); err != nil {
				return recovered, failed, err
			}
		}
		LogsProcessedInc(outcome)
	}

	p.log.Infow("quarantine replayed", "recovered", recovered, "failed", failed)
	return recovered, failed, nil
}

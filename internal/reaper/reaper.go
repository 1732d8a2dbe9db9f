package reaper

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/internal/metrics"
	"github.com/goran-ethernal/TicketIndexor/internal/projector"
)

const secondsPerDay = 24 * 60 * 60

const (
	actionCancel = "cancel"
	actionClose  = "close"
)

// Decision lists the approved events that should be cancelled or closed.
// An id never appears in both lists.
type Decision struct {
	Today  time.Time
	Cancel []uint64
	Close  []uint64
}

// Empty reports whether the decision requires no action.
func (d *Decision) Empty() bool {
	return len(d.Cancel) == 0 && len(d.Close) == 0
}

// Sink receives the decision of every tick.
type Sink interface {
	Handle(ctx context.Context, d *Decision) error
}

// Reaper periodically classifies approved events whose lifecycle should end.
type Reaper struct {
	db       *sql.DB
	interval time.Duration
	sink     Sink
	log      *logger.Logger
	now      func() time.Time
}

// New creates a reaper.
func New(database *sql.DB, interval time.Duration, sink Sink, log *logger.Logger) *Reaper {
	return &Reaper{
		db:       database,
		interval: interval,
		sink:     sink,
		log:      log.WithComponent(common.ComponentReaper),
		now:      time.Now,
	}
}

// Run ticks immediately and then every interval until ctx is done. A failed tick
// is logged and retried on the next one.
func (r *Reaper) Run(ctx context.Context) error {
	r.log.Infow("reaper started", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			ReaperErrorInc()
			metrics.ComponentHealthSet(common.ComponentReaper, false)
			r.log.Errorw("reaper tick failed", "error", err)
		} else {
			metrics.ComponentHealthSet(common.ComponentReaper, true)
		}

		select {
		case <-ctx.Done():
			r.log.Info("reaper stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Tick classifies the events once and hands the decision to the sink.
func (r *Reaper) Tick(ctx context.Context) error {
	d, err := r.Classify(ctx)
	if err != nil {
		return err
	}

	ReaperTickInc()
	ReaperDecisionsAdd(actionCancel, len(d.Cancel))
	ReaperDecisionsAdd(actionClose, len(d.Close))

	return r.sink.Handle(ctx, d)
}

// Classify selects, in a single query, the approved events to cancel and to close.
// "Today" is the current UTC day. Start dates are unix seconds compared at day
// granularity, so an event starting at 22:00 belongs to its UTC day.
// Cancellation wins over closure for the same event.
func (r *Reaper) Classify(ctx context.Context) (*Decision, error) {
	today := r.now().UTC().Truncate(secondsPerDay * time.Second)
	todayUnix := today.Unix()

	rows, err := r.db.QueryContext(ctx, `
		SELECT e.id, ?
		FROM events e JOIN event_places p ON p.id = e.place_id
		WHERE e.status = ?
			AND ? + p.days_before_cancel * ? >= e.start_date - (e.start_date % ?)
			AND e.tickets_sold < p.min_tickets
		UNION ALL
		SELECT e.id, ?
		FROM events e
		WHERE e.status = ?
			AND e.start_date - (e.start_date % ?) + e.days_amount * ? < ?
		ORDER BY 1`,
		actionCancel, projector.StatusApproved, todayUnix, secondsPerDay, secondsPerDay,
		actionClose, projector.StatusApproved, secondsPerDay, secondsPerDay, todayUnix)
	if err != nil {
		return nil, fmt.Errorf("failed to select events to reap: %w", err)
	}
	defer rows.Close()

	d := &Decision{Today: today}
	var closing []uint64
	for rows.Next() {
		var (
			id     uint64
			action string
		)
		if err := rows.Scan(&id, &action); err != nil {
			return nil, fmt.Errorf("failed to scan reaped event: %w", err)
		}
		if action == actionCancel {
			d.Cancel = append(d.Cancel, id)
		} else {
			closing = append(closing, id)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to select events to reap: %w", err)
	}

	for _, id := range closing {
		if !slices.Contains(d.Cancel, id) {
			d.Close = append(d.Close, id)
		}
	}

	return d, nil
}

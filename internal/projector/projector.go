package projector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/content"
	"github.com/goran-ethernal/TicketIndexor/internal/decoder"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
)

// ContentResolver fetches the documents referenced by event multihashes.
type ContentResolver interface {
	Place(ctx context.Context, mh decoder.Multihash) (*content.Place, string, error)
	Event(ctx context.Context, mh decoder.Multihash) (*content.EventMeta, *content.Social, string, error)
	Social(ctx context.Context, mh decoder.Multihash) (*content.Social, error)
}

// Projector applies decoded events to the database. Content is resolved before a
// handler's transaction opens, so a transaction never waits on the network.
type Projector struct {
	db      *sql.DB
	content ContentResolver
	log     *logger.Logger
	now     func() time.Time
}

// New creates a projector.
func New(database *sql.DB, resolver ContentResolver, log *logger.Logger) *Projector {
	return &Projector{
		db:      database,
		content: resolver,
		log:     log.WithComponent(common.ComponentProjector),
		now:     time.Now,
	}
}

// Apply dispatches ev to its handler. Applying the same event twice leaves the same
// state, apart from possibly repeated notifications.
func (p *Projector) Apply(ctx context.Context, ev decoder.Event) error {
	switch e := ev.(type) {
	case *decoder.NewEventPlaceRequest:
		return p.placeRequested(ctx, e)
	case *decoder.EventPlaceUpdated:
		return p.placeUpdated(ctx, e)
	case *decoder.NewEventRequest:
		return p.eventRequested(ctx, e)
	case *decoder.EventUpdated:
		return p.eventUpdated(ctx, e)
	case *decoder.EventStatusChanged:
		return p.eventStatusChanged(ctx, e)
	case *decoder.TicketMinted:
		return p.ticketMinted(ctx, e)
	case *decoder.TicketRedeemed:
		return p.ticketRedeemed(ctx, e)
	case *decoder.RoleGranted:
		return p.roleChanged(ctx, e.Role, e.Account, true)
	case *decoder.RoleRevoked:
		return p.roleChanged(ctx, e.Role, e.Account, false)
	case *decoder.RoleAdminChanged, *decoder.TicketTransfer, *decoder.TicketApproval,
		*decoder.ApprovalForAll, *decoder.TokenTransfer, *decoder.TokenApproval:
		p.log.Debugf("ignoring %s at block %d", ev.EventName(), ev.Source().BlockNumber)
		return nil
	default:
		return fmt.Errorf("no handler for %s", ev.EventName())
	}
}

// inTx runs fn in a transaction that is committed only if fn succeeds.
func (p *Projector) inTx(ctx context.Context, fn func(tx *sql.Tx, now int64) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			p.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	if err := fn(tx, p.now().UTC().Unix()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func toUint64(name string, v *big.Int) (uint64, error) {
	if v == nil || !v.IsUint64() {
		return 0, fmt.Errorf("%s %v does not fit in uint64", name, v)
	}
	return v.Uint64(), nil
}

func toInt64(name string, v *big.Int) (int64, error) {
	if v == nil || !v.IsInt64() {
		return 0, fmt.Errorf("%s %v does not fit in int64", name, v)
	}
	return v.Int64(), nil
}

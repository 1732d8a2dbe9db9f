package projector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goran-ethernal/TicketIndexor/internal/content"
	"github.com/goran-ethernal/TicketIndexor/internal/db"
	"github.com/goran-ethernal/TicketIndexor/internal/decoder"
	"github.com/russross/meddler"
	"github.com/shopspring/decimal"
)

// placeFromTerms fills the on-chain fields of a place.
func placeFromTerms(p *Place, id uint64, terms decoder.PlaceTerms) error {
	maxTickets, err := toUint64("maxTickets", terms.MaxTickets)
	if err != nil {
		return err
	}
	minTickets, err := toUint64("minTickets", terms.MinTickets)
	if err != nil {
		return err
	}
	minDays, err := toUint64("minDays", terms.MinDays)
	if err != nil {
		return err
	}
	daysBeforeCancel, err := toUint64("daysBeforeCancel", terms.DaysBeforeCancel)
	if err != nil {
		return err
	}
	if terms.MinPrice == nil {
		return fmt.Errorf("minPrice is missing")
	}
	if minTickets > maxTickets {
		return fmt.Errorf("place %d: minTickets %d exceeds maxTickets %d", id, minTickets, maxTickets)
	}

	p.ID = id
	p.MaxTickets = maxTickets
	p.MinTickets = minTickets
	p.MinPrice = decimal.NewFromBigInt(terms.MinPrice, 0)
	p.MinDays = minDays
	p.DaysBeforeCancel = daysBeforeCancel
	p.Available = terms.Available
	return nil
}

func applyPlaceDoc(p *Place, doc *content.Place, cid string) {
	if doc == nil {
		return
	}
	p.Title = doc.Title
	p.Description = doc.Description
	p.Geometry = string(doc.Geometry)
	p.CID = cid
}

func (p *Projector) placeRequested(ctx context.Context, ev *decoder.NewEventPlaceRequest) error {
	id, err := toUint64("id", ev.ID)
	if err != nil {
		return err
	}

	doc, cid, err := p.content.Place(ctx, ev.Multihash)
	if err != nil {
		return fmt.Errorf("place %d content: %w", id, err)
	}

	place := &Place{Status: StatusSubmitted}
	if err := placeFromTerms(place, id, ev.PlaceTerms); err != nil {
		return err
	}
	applyPlaceDoc(place, doc, cid)

	return p.inTx(ctx, func(tx *sql.Tx, now int64) error {
		if err := ensureUser(tx, ev.Requester, now); err != nil {
			return err
		}

		_, err := GetPlace(tx, id)
		switch {
		case err == nil:
			p.log.Debugf("place %d already exists, skipping insert", id)
		case errors.Is(err, ErrNotFound):
			place.CreatedAt, place.UpdatedAt = now, now
			if err := meddler.Insert(tx, "event_places", place); err != nil {
				return fmt.Errorf("failed to insert place %d: %w", id, err)
			}
		default:
			return err
		}

		return notify(tx, ev.Requester, TitlePlaceRequested,
			fmt.Sprintf("Your request for event place %s was submitted.", label(id, place.Title)), now)
	})
}

func (p *Projector) placeUpdated(ctx context.Context, ev *decoder.EventPlaceUpdated) error {
	id, err := toUint64("id", ev.ID)
	if err != nil {
		return err
	}
	status, err := PlaceStatus(ev.Status)
	if err != nil {
		return err
	}

	doc, cid, err := p.content.Place(ctx, ev.Multihash)
	if err != nil {
		return fmt.Errorf("place %d content: %w", id, err)
	}

	return p.inTx(ctx, func(tx *sql.Tx, now int64) error {
		if err := ensureUser(tx, ev.Provider, now); err != nil {
			return err
		}

		place, err := GetPlace(tx, id)
		created := errors.Is(err, ErrNotFound)
		switch {
		case created:
			place = &Place{CreatedAt: now}
		case err != nil:
			return err
		}

		if err := placeFromTerms(place, id, ev.PlaceTerms); err != nil {
			return err
		}
		applyPlaceDoc(place, doc, cid)
		provider := ev.Provider
		place.Provider = &provider
		place.Status = status
		place.UpdatedAt = now

		if created {
			err = meddler.Insert(tx, "event_places", place)
		} else {
			_, err = tx.Exec(`
				UPDATE event_places SET provider = ?, title = ?, description = ?, geometry = ?,
					max_tickets = ?, min_tickets = ?, min_price = ?, min_days = ?, days_before_cancel = ?,
					available = ?, status = ?, cid = ?, updated_at = ?
				WHERE id = ?`,
				db.CanonicalAddress(provider), place.Title, place.Description, place.Geometry,
				place.MaxTickets, place.MinTickets, place.MinPrice, place.MinDays, place.DaysBeforeCancel,
				place.Available, place.Status, nullable(place.CID), place.UpdatedAt, id)
		}
		if err != nil {
			return fmt.Errorf("failed to save place %d: %w", id, err)
		}

		return notify(tx, provider, TitlePlaceUpdated,
			fmt.Sprintf("Event place %s is %s.", label(id, place.Title), status), now)
	})
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

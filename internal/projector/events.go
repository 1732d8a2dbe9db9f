package projector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/TicketIndexor/internal/content"
	"github.com/goran-ethernal/TicketIndexor/internal/db"
	"github.com/goran-ethernal/TicketIndexor/internal/decoder"
	"github.com/russross/meddler"
	"github.com/shopspring/decimal"
)

type eventTerms struct {
	id, placeID uint64
	price       decimal.Decimal
	startDate   int64
	daysAmount  uint64
}

func parseEventTerms(t decoder.EventTerms) (eventTerms, error) {
	var out eventTerms
	var err error

	if out.id, err = toUint64("id", t.ID); err != nil {
		return out, err
	}
	if out.placeID, err = toUint64("eventPlaceId", t.EventPlaceID); err != nil {
		return out, err
	}
	if out.startDate, err = toInt64("startDate", t.StartDate); err != nil {
		return out, err
	}
	if out.daysAmount, err = toUint64("daysAmount", t.DaysAmount); err != nil {
		return out, err
	}
	if t.TicketPrice == nil {
		return out, fmt.Errorf("ticketPrice is missing")
	}
	out.price = decimal.NewFromBigInt(t.TicketPrice, 0)

	return out, nil
}

func applyEventDoc(e *Event, doc *content.EventMeta, cid string) {
	if doc == nil {
		return
	}
	e.Title = doc.Title
	e.Description = doc.Description
	e.Cover = doc.Cover
	e.Website = doc.Website
	e.CID = cid
}

func (p *Projector) eventRequested(ctx context.Context, ev *decoder.NewEventRequest) error {
	terms, err := parseEventTerms(ev.EventTerms)
	if err != nil {
		return err
	}

	doc, social, cid, err := p.content.Event(ctx, ev.Multihash)
	if err != nil {
		return fmt.Errorf("event %d content: %w", terms.id, err)
	}

	return p.inTx(ctx, func(tx *sql.Tx, now int64) error {
		if err := ensureUser(tx, ev.Creator, now); err != nil {
			return err
		}

		place, err := GetPlace(tx, terms.placeID)
		if err != nil {
			return err
		}

		if social != nil {
			if err := linkSocial(tx, ev.Creator, social.Network, social.Value, doc.SocialsCID, now); err != nil {
				return err
			}
		}

		existing, err := GetEvent(tx, terms.id)
		switch {
		case err == nil:
			p.log.Debugf("event %d already exists, skipping insert", terms.id)
		case errors.Is(err, ErrNotFound):
			existing = &Event{
				ID:          terms.id,
				Creator:     ev.Creator,
				PlaceID:     terms.placeID,
				TicketPrice: terms.price,
				StartDate:   terms.startDate,
				DaysAmount:  terms.daysAmount,
				Status:      StatusSubmitted,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			applyEventDoc(existing, doc, cid)
			if err := meddler.Insert(tx, "events", existing); err != nil {
				return fmt.Errorf("failed to insert event %d: %w", terms.id, err)
			}
		default:
			return err
		}

		name := label(terms.id, existing.Title)
		if err := notify(tx, ev.Creator, TitleEventRequested,
			fmt.Sprintf("Your event %s was submitted for review.", name), now); err != nil {
			return err
		}
		if place.Provider != nil {
			return notify(tx, *place.Provider, TitleEventRequested,
				fmt.Sprintf("Event %s was requested at your place %s.", name, label(place.ID, place.Title)), now)
		}
		return nil
	})
}

func (p *Projector) eventUpdated(ctx context.Context, ev *decoder.EventUpdated) error {
	terms, err := parseEventTerms(ev.EventTerms)
	if err != nil {
		return err
	}

	doc, social, cid, err := p.content.Event(ctx, ev.Multihash)
	if err != nil {
		return fmt.Errorf("event %d content: %w", terms.id, err)
	}

	return p.inTx(ctx, func(tx *sql.Tx, now int64) error {
		event, err := GetEvent(tx, terms.id)
		if err != nil {
			return err
		}
		place, err := GetPlace(tx, terms.placeID)
		if err != nil {
			return err
		}

		if social != nil {
			if err := linkSocial(tx, event.Creator, social.Network, social.Value, doc.SocialsCID, now); err != nil {
				return err
			}
		}

		event.PlaceID = terms.placeID
		event.TicketPrice = terms.price
		event.StartDate = terms.startDate
		event.DaysAmount = terms.daysAmount
		event.UpdatedAt = now
		applyEventDoc(event, doc, cid)

		_, err = tx.Exec(`
			UPDATE events SET place_id = ?, ticket_price = ?, start_date = ?, days_amount = ?,
				title = ?, description = ?, cover = ?, website = ?, cid = ?, updated_at = ?
			WHERE id = ?`,
			event.PlaceID, event.TicketPrice, event.StartDate, event.DaysAmount,
			event.Title, event.Description, event.Cover, event.Website, nullable(event.CID), event.UpdatedAt,
			event.ID)
		if err != nil {
			return fmt.Errorf("failed to update event %d: %w", event.ID, err)
		}

		body := fmt.Sprintf("Event %s was updated.", label(event.ID, event.Title))
		return notifyCreatorAndProvider(tx, event.Creator, place.Provider, TitleEventUpdated, body, now)
	})
}

func (p *Projector) eventStatusChanged(ctx context.Context, ev *decoder.EventStatusChanged) error {
	id, err := toUint64("eventId", ev.EventID)
	if err != nil {
		return err
	}
	status, err := EventStatus(ev.Status)
	if err != nil {
		return err
	}

	return p.inTx(ctx, func(tx *sql.Tx, now int64) error {
		event, err := GetEvent(tx, id)
		if err != nil {
			return err
		}

		if event.Status == status {
			return nil
		}
		if !CanTransition(event.Status, status) {
			if Reachable(event.Status, status) {
				return fmt.Errorf("%w: event %d is %s, cannot become %s yet",
					ErrStatusOutOfOrder, id, event.Status, status)
			}
			p.log.Warnf("ignoring status change of event %d from %s to %s", id, event.Status, status)
			return nil
		}

		if _, err := tx.Exec(`UPDATE events SET status = ?, updated_at = ? WHERE id = ?`, status, now, id); err != nil {
			return fmt.Errorf("failed to update status of event %d: %w", id, err)
		}
		event.Status = status

		name := label(event.ID, event.Title)
		if err := notify(tx, event.Creator, TitleEventStatus, fmt.Sprintf("Event %s is %s.", name, status), now); err != nil {
			return err
		}

		place, err := GetPlace(tx, event.PlaceID)
		if err != nil {
			return err
		}
		if place.Provider == nil {
			return nil
		}

		body := fmt.Sprintf("Event %s at your place %s is %s.", name, label(place.ID, place.Title), status)
		if IsTerminal(status) {
			body += fmt.Sprintf("\nEarnings: %s", FormatEther(Earnings(event)))
		}
		return notify(tx, *place.Provider, TitleEventStatus, body, now)
	})
}

func notifyCreatorAndProvider(tx *sql.Tx, creator common.Address, provider *common.Address,
	title, body string, now int64) error {
	if err := notify(tx, creator, title, body, now); err != nil {
		return err
	}
	if provider == nil || db.CanonicalAddress(*provider) == db.CanonicalAddress(creator) {
		return nil
	}
	return notify(tx, *provider, title, body, now)
}

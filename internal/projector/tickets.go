package projector

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goran-ethernal/TicketIndexor/internal/content"
	"github.com/goran-ethernal/TicketIndexor/internal/db"
	"github.com/goran-ethernal/TicketIndexor/internal/decoder"
)

func (p *Projector) ticketMinted(ctx context.Context, ev *decoder.TicketMinted) error {
	eventID, err := toUint64("eventId", ev.EventID)
	if err != nil {
		return err
	}
	if ev.TicketID == nil {
		return fmt.Errorf("ticketId is missing")
	}
	ticketID := ev.TicketID.String()

	social, err := p.content.Social(ctx, ev.Multihash)
	if err != nil {
		return fmt.Errorf("ticket %s content: %w", ticketID, err)
	}
	cid, err := content.CID(ev.Multihash)
	if err != nil {
		return err
	}

	return p.inTx(ctx, func(tx *sql.Tx, now int64) error {
		event, err := GetEvent(tx, eventID)
		if err != nil {
			return err
		}
		if err := ensureUser(tx, ev.Owner, now); err != nil {
			return err
		}
		if social != nil {
			if err := linkSocial(tx, ev.Owner, social.Network, social.Value, cid, now); err != nil {
				return err
			}
		}

		res, err := tx.Exec(`
			INSERT INTO tickets (id, event_id, owner, redeemed, price_paid, created_at, updated_at)
			VALUES (?, ?, ?, 0, ?, ?, ?)
			ON CONFLICT (id) DO NOTHING`,
			ticketID, eventID, db.CanonicalAddress(ev.Owner), event.TicketPrice, now, now)
		if err != nil {
			return fmt.Errorf("failed to insert ticket %s: %w", ticketID, err)
		}
		inserted, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if inserted == 0 {
			p.log.Debugf("ticket %s already exists", ticketID)
			return nil
		}

		if _, err := tx.Exec(`UPDATE events SET tickets_sold = tickets_sold + 1, updated_at = ? WHERE id = ?`,
			now, eventID); err != nil {
			return fmt.Errorf("failed to count ticket %s: %w", ticketID, err)
		}

		return notify(tx, ev.Owner, TitleTicketMinted,
			fmt.Sprintf("Ticket %s for event %s is yours.", ticketID, label(event.ID, event.Title)), now)
	})
}

func (p *Projector) ticketRedeemed(ctx context.Context, ev *decoder.TicketRedeemed) error {
	if ev.TicketID == nil {
		return fmt.Errorf("ticketId is missing")
	}
	ticketID := ev.TicketID.String()

	return p.inTx(ctx, func(tx *sql.Tx, now int64) error {
		ticket, err := GetTicket(tx, ticketID)
		if err != nil {
			return err
		}
		if ticket.Redeemed {
			return nil
		}

		if _, err := tx.Exec(`UPDATE tickets SET redeemed = 1, updated_at = ? WHERE id = ? AND redeemed = 0`,
			now, ticketID); err != nil {
			return fmt.Errorf("failed to redeem ticket %s: %w", ticketID, err)
		}

		return notify(tx, ticket.Owner, TitleTicketRedeemed, fmt.Sprintf("Ticket %s was redeemed.", ticketID), now)
	})
}

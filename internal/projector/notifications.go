package projector

import (
	"database/sql"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/TicketIndexor/internal/db"
	"github.com/shopspring/decimal"
)

// Notification titles.
const (
	TitlePlaceRequested = "Event place request submitted"
	TitlePlaceUpdated   = "Event place updated"
	TitleEventRequested = "Event request submitted"
	TitleEventUpdated   = "Event updated"
	TitleEventStatus    = "Event status changed"
	TitleTicketMinted   = "Ticket minted"
	TitleTicketRedeemed = "Ticket redeemed"
	TitleRoleGranted    = "Role granted"
	TitleRoleRevoked    = "Role revoked"
)

const weiDecimals = 18

func notify(tx *sql.Tx, to common.Address, title, body string, now int64) error {
	_, err := tx.Exec(`INSERT INTO notifications (user_address, title, body, created_at) VALUES (?, ?, ?, ?)`,
		db.CanonicalAddress(to), title, body, now)
	if err != nil {
		return fmt.Errorf("failed to notify %s: %w", to.Hex(), err)
	}
	return nil
}

// Earnings is the provider payout of an event in terminal status, in wei.
// Cancelled events earn nothing.
func Earnings(e *Event) decimal.Decimal {
	if e.Status != StatusClosed {
		return decimal.Zero
	}
	return e.TicketPrice.Mul(decimal.NewFromInt(int64(e.TicketsSold)))
}

// FormatEther renders a wei amount in ether.
func FormatEther(wei decimal.Decimal) string {
	return wei.Shift(-weiDecimals).String() + " ETH"
}

func label(id uint64, title string) string {
	if title == "" {
		return fmt.Sprintf("#%d", id)
	}
	return fmt.Sprintf("#%d (%s)", id, title)
}

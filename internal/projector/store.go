package projector

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/TicketIndexor/internal/db"
	"github.com/russross/meddler"
)

// GetPlace loads a place or returns ErrNotFound.
func GetPlace(q meddler.DB, id uint64) (*Place, error) {
	var p Place
	if err := meddler.QueryRow(q, &p, `SELECT * FROM event_places WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "event place %d", id)
	}
	return &p, nil
}

// GetEvent loads an event or returns ErrNotFound.
func GetEvent(q meddler.DB, id uint64) (*Event, error) {
	var e Event
	if err := meddler.QueryRow(q, &e, `SELECT * FROM events WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "event %d", id)
	}
	return &e, nil
}

// GetTicket loads a ticket or returns ErrNotFound.
func GetTicket(q meddler.DB, id string) (*Ticket, error) {
	var t Ticket
	if err := meddler.QueryRow(q, &t, `SELECT * FROM tickets WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "ticket %s", id)
	}
	return &t, nil
}

// GetUser loads a user or returns ErrNotFound.
func GetUser(q meddler.DB, addr common.Address) (*User, error) {
	var u User
	if err := meddler.QueryRow(q, &u, `SELECT * FROM users WHERE address = ?`, db.CanonicalAddress(addr)); err != nil {
		return nil, notFound(err, "user %s", addr.Hex())
	}
	return &u, nil
}

// ListNotifications returns a user's notifications, oldest first.
func ListNotifications(q meddler.DB, addr common.Address) ([]*Notification, error) {
	var out []*Notification
	err := meddler.QueryAll(q, &out,
		`SELECT * FROM notifications WHERE user_address = ? ORDER BY id`, db.CanonicalAddress(addr))
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return out, nil
}

// ListSocials returns a user's linked social identities.
func ListSocials(q meddler.DB, addr common.Address) ([]*UserSocial, error) {
	var out []*UserSocial
	err := meddler.QueryAll(q, &out,
		`SELECT * FROM user_socials WHERE user_address = ? ORDER BY id`, db.CanonicalAddress(addr))
	if err != nil {
		return nil, fmt.Errorf("failed to list socials: %w", err)
	}
	return out, nil
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
	}
	return fmt.Errorf("failed to load "+format+": %w", append(args, err)...)
}

// ensureUser creates the user on first reference with the customer defaults.
func ensureUser(tx *sql.Tx, addr common.Address, now int64) error {
	_, err := tx.Exec(`INSERT INTO users (address, created_at) VALUES (?, ?) ON CONFLICT (address) DO NOTHING`,
		db.CanonicalAddress(addr), now)
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", addr.Hex(), err)
	}
	return nil
}

// linkSocial stores a social identity, ignoring one that is already linked.
func linkSocial(tx *sql.Tx, addr common.Address, network, value, cid string, now int64) error {
	_, err := tx.Exec(`
		INSERT INTO user_socials (user_address, network, value, metadata, created_at)
		VALUES (?, ?, ?, json_object('cid', ?), ?)
		ON CONFLICT (user_address, network, value) DO NOTHING`,
		db.CanonicalAddress(addr), network, value, cid, now)
	if err != nil {
		return fmt.Errorf("failed to link %s identity for %s: %w", network, addr.Hex(), err)
	}
	return nil
}

// setRole makes role the user's primary role and keeps the auxiliary set in sync.
func setRole(tx *sql.Tx, addr common.Address, role string, granted bool) error {
	user, err := GetUser(tx, addr)
	if err != nil {
		return err
	}

	aux := splitRoles(user.AuxRoles)
	primary := role
	if granted {
		if !slices.Contains(aux, role) {
			aux = append(aux, role)
		}
	} else {
		aux = slices.DeleteFunc(aux, func(r string) bool { return r == role })
		primary = RoleCustomer
	}
	slices.Sort(aux)

	_, err = tx.Exec(`UPDATE users SET role = ?, aux_roles = ? WHERE address = ?`,
		primary, strings.Join(aux, ","), db.CanonicalAddress(addr))
	if err != nil {
		return fmt.Errorf("failed to update role of %s: %w", addr.Hex(), err)
	}
	return nil
}

func splitRoles(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// elevatedUsers returns the addresses holding an elevated role, excluding skip.
// The auxiliary set is authoritative: a later grant replaces the primary role
// but the elevated role is still held.
func elevatedUsers(tx *sql.Tx, skip common.Address) ([]common.Address, error) {
	rows, err := tx.Query(`
		SELECT address FROM users
		WHERE (role IN (?, ?)
				OR ',' || aux_roles || ',' LIKE ?
				OR ',' || aux_roles || ',' LIKE ?)
			AND address <> ?
		ORDER BY address`,
		ElevatedRoles[0], ElevatedRoles[1],
		"%,"+ElevatedRoles[0]+",%", "%,"+ElevatedRoles[1]+",%",
		db.CanonicalAddress(skip))
	if err != nil {
		return nil, fmt.Errorf("failed to list elevated users: %w", err)
	}
	defer rows.Close()

	var out []common.Address
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, err
		}
		out = append(out, common.HexToAddress(addr))
	}
	return out, rows.Err()
}

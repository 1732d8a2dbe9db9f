package projector

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

func (p *Projector) roleChanged(ctx context.Context, role common.Hash, account common.Address, granted bool) error {
	name, err := RoleName(role)
	if err != nil {
		return err
	}
	if name == "" {
		p.log.Debugf("ignoring default admin role change for %s", account.Hex())
		return nil
	}

	title, verb := TitleRoleGranted, "granted"
	if !granted {
		title, verb = TitleRoleRevoked, "revoked"
	}

	return p.inTx(ctx, func(tx *sql.Tx, now int64) error {
		if err := ensureUser(tx, account, now); err != nil {
			return err
		}
		if err := setRole(tx, account, name, granted); err != nil {
			return err
		}

		if err := notify(tx, account, title, fmt.Sprintf("The %s role was %s for you.", name, verb), now); err != nil {
			return err
		}

		staff, err := elevatedUsers(tx, account)
		if err != nil {
			return err
		}
		body := fmt.Sprintf("The %s role was %s for %s.", name, verb, account.Hex())
		for _, addr := range staff {
			if err := notify(tx, addr, title, body, now); err != nil {
				return err
			}
		}
		return nil
	})
}

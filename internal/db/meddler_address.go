package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
)

func init() {
	meddler.Register("address", AddressMeddler{})
}

// AddressMeddler stores common.Address as lowercase 0x-prefixed hex, which is the
// canonical form user rows are keyed by. NULL maps to a nil *common.Address.
type AddressMeddler struct{}

func (a AddressMeddler) PreRead(fieldAddr any) (scanTarget any, err error) {
	return new(sql.NullString), nil
}

func (a AddressMeddler) PostRead(fieldAddr, scanTarget any) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	switch ptr := fieldAddr.(type) {
	case **common.Address:
		if !ns.Valid {
			*ptr = nil
			return nil
		}
		address := common.HexToAddress(ns.String)
		*ptr = &address
	case *common.Address:
		if !ns.Valid {
			*ptr = common.Address{}
			return nil
		}
		*ptr = common.HexToAddress(ns.String)
	default:
		return fmt.Errorf("expected *common.Address or **common.Address, got %T", fieldAddr)
	}

	return nil
}

func (a AddressMeddler) PreWrite(field any) (saveValue any, err error) {
	switch v := field.(type) {
	case *common.Address:
		if v == nil {
			return nil, nil
		}
		return CanonicalAddress(*v), nil
	case common.Address:
		return CanonicalAddress(v), nil
	default:
		return nil, fmt.Errorf("expected common.Address or *common.Address, got %T", field)
	}
}

// CanonicalAddress renders an address the way it is stored: lowercase hex.
func CanonicalAddress(a common.Address) string {
	return strings.ToLower(a.Hex())
}

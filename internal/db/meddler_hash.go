package db

import (
	"database/sql"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
)

func init() {
	meddler.Register("hash", HashMeddler{})
}

// HashMeddler handles conversion between common.Hash and its hex column.
type HashMeddler struct{}

func (h HashMeddler) PreRead(fieldAddr any) (scanTarget any, err error) {
	return new(sql.NullString), nil
}

func (h HashMeddler) PostRead(fieldAddr, scanTarget any) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	ptr, ok := fieldAddr.(*common.Hash)
	if !ok {
		return fmt.Errorf("expected *common.Hash, got %T", fieldAddr)
	}

	*ptr = common.Hash{}
	if ns.Valid {
		*ptr = common.HexToHash(ns.String)
	}
	return nil
}

func (h HashMeddler) PreWrite(field any) (saveValue any, err error) {
	if hash, ok := field.(common.Hash); ok {
		return hash.Hex(), nil
	}
	return nil, fmt.Errorf("expected common.Hash, got %T", field)
}

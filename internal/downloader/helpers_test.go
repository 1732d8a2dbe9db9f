package downloader

import (
	"database/sql"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/TicketIndexor/internal/content"
	"github.com/goran-ethernal/TicketIndexor/internal/content/mocks"
	"github.com/goran-ethernal/TicketIndexor/internal/decoder"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/internal/projector"
	"github.com/goran-ethernal/TicketIndexor/tests/helpers"
	"github.com/stretchr/testify/require"
)

var contract = common.HexToAddress("0x00000000000000000000000000000000000c0de1")

type pipeline struct {
	db         *sql.DB
	sync       *SyncManager
	quarantine *QuarantineStore
	processor  *Processor
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()

	database := helpers.NewTestDB(t, "downloader.sqlite")
	log := logger.NewNopLogger()

	// the logs used here carry no content, so the store must never be reached
	resolver := content.NewResolver(mocks.NewStore(t), nil, log)

	p := &pipeline{
		db:         database,
		sync:       NewSyncManager(database, log, nil),
		quarantine: NewQuarantineStore(database, log, nil),
	}
	p.processor = NewProcessor(newDecoder(t), projector.New(database, resolver, log), p.quarantine, p.sync, log)
	return p
}

func newDecoder(t *testing.T) *decoder.Decoder {
	t.Helper()

	dec, err := decoder.New()
	require.NoError(t, err)
	return dec
}

func withMeta(l types.Log, block uint64, tx string, index uint) types.Log {
	l.Address = contract
	l.BlockNumber = block
	l.TxHash = common.HexToHash(tx)
	l.Index = index
	if l.Data == nil {
		l.Data = []byte{}
	}
	return l
}

// noopLog is a RoleAdminChanged log, which decodes and projects without touching the database.
func noopLog(t *testing.T, block uint64, tx string, index uint) types.Log {
	t.Helper()

	l, err := decoder.EncodeLog("roles", "RoleAdminChanged", map[string]any{
		"role":              decoder.VerifiedRole,
		"previousAdminRole": common.Hash{},
		"newAdminRole":      decoder.AdminRole,
	})
	require.NoError(t, err)
	return withMeta(l, block, tx, index)
}

// eventRequestLog requests event id at place placeID without content.
func eventRequestLog(t *testing.T, block uint64, tx string, id, placeID int64) types.Log {
	t.Helper()

	l, err := decoder.EncodeLog("events", "NewEventRequest", map[string]any{
		"id":           big.NewInt(id),
		"creator":      common.HexToAddress("0xccc"),
		"eventPlaceId": big.NewInt(placeID),
		"ticketPrice":  big.NewInt(200),
		"startDate":    big.NewInt(1_700_000_000),
		"daysAmount":   big.NewInt(3),
		"digest":       [32]byte{},
		"hashFunction": uint8(0),
		"size":         uint8(0),
	})
	require.NoError(t, err)
	return withMeta(l, block, tx, 0)
}

func placeUpdatedLog(t *testing.T, block uint64, tx string, id int64) types.Log {
	t.Helper()

	l, err := decoder.EncodeLog("places", "EventPlaceUpdated", map[string]any{
		"id":               big.NewInt(id),
		"provider":         common.HexToAddress("0xbbb"),
		"maxTickets":       big.NewInt(100),
		"minTickets":       big.NewInt(10),
		"minPrice":         big.NewInt(50),
		"minDays":          big.NewInt(1),
		"daysBeforeCancel": big.NewInt(2),
		"available":        true,
		"status":           uint8(1),
		"digest":           [32]byte{},
		"hashFunction":     uint8(0),
		"size":             uint8(0),
	})
	require.NoError(t, err)
	return withMeta(l, block, tx, 0)
}

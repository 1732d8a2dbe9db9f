package downloader

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/TicketIndexor/internal/projector"
	"github.com/stretchr/testify/require"
)

func TestProcessor_QuarantineAndReplay(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := newPipeline(t)

	failing := eventRequestLog(t, 40, "0xe7", 7, 999)
	require.NoError(t, p.processor.Process(ctx, failing))

	rows, err := p.quarantine.List(0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, failing.TxHash, rows[0].TxHash)
	require.Contains(t, rows[0].Error, "entity not found")

	last, err := p.sync.GetLastBlock()
	require.NoError(t, err)
	require.Equal(t, uint64(40), last)

	// still failing, the entry is kept and its attempts counted
	recovered, failed, err := p.processor.Replay(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, recovered)
	require.Equal(t, 1, failed)

	require.NoError(t, p.processor.Process(ctx, placeUpdatedLog(t, 41, "0x999", 999)))

	recovered, failed, err = p.processor.Replay(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, recovered)
	require.Equal(t, 0, failed)

	event, err := projector.GetEvent(p.db, 7)
	require.NoError(t, err)
	require.Equal(t, uint64(999), event.PlaceID)

	n, err := p.quarantine.Count()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestProcessor_SuccessRemovesQuarantineEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := newPipeline(t)

	l := eventRequestLog(t, 10, "0xe1", 1, 5)
	require.NoError(t, p.processor.Process(ctx, l))
	require.NoError(t, p.processor.Process(ctx, placeUpdatedLog(t, 11, "0xf5", 5)))

	// live redelivery of the same log succeeds now
	require.NoError(t, p.processor.Process(ctx, l))

	n, err := p.quarantine.Count()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestProcessor_UnrecognizedAndMalformedLogs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := newPipeline(t)

	unknown := withMeta(types.Log{Topics: []common.Hash{common.HexToHash("0xdead")}}, 3, "0x01", 0)
	require.NoError(t, p.processor.Process(ctx, unknown))

	n, err := p.quarantine.Count()
	require.NoError(t, err)
	require.Zero(t, n)

	// a known signature with data that does not unpack is a decode failure
	malformed := noopLog(t, 4, "0x02", 0)
	malformed.Topics = malformed.Topics[:2]
	require.NoError(t, p.processor.Process(ctx, malformed))

	rows, err := p.quarantine.List(0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, uint64(4), rows[0].BlockNumber)

	last, err := p.sync.GetLastBlock()
	require.NoError(t, err)
	require.Equal(t, uint64(4), last)
}

func TestProcessor_DuplicateDeliveryKeepsState(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	once, twice := newPipeline(t), newPipeline(t)

	logs := []types.Log{
		placeUpdatedLog(t, 1, "0xa1", 1),
		eventRequestLog(t, 2, "0xa2", 7, 1),
	}
	for _, l := range logs {
		require.NoError(t, once.processor.Process(ctx, l))
		require.NoError(t, twice.processor.Process(ctx, l))
		require.NoError(t, twice.processor.Process(ctx, l))
	}

	for _, id := range []uint64{7} {
		a, err := projector.GetEvent(once.db, id)
		require.NoError(t, err)
		b, err := projector.GetEvent(twice.db, id)
		require.NoError(t, err)
		a.CreatedAt, a.UpdatedAt, b.CreatedAt, b.UpdatedAt = 0, 0, 0, 0
		require.Equal(t, a, b)
	}

	a, err := projector.GetPlace(once.db, 1)
	require.NoError(t, err)
	b, err := projector.GetPlace(twice.db, 1)
	require.NoError(t, err)
	a.CreatedAt, a.UpdatedAt, b.CreatedAt, b.UpdatedAt = 0, 0, 0, 0
	require.Equal(t, a, b)
}

package downloader

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/tests/helpers"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	l := noopLog(t, 12, "0xabc", 4)
	l.BlockHash = common.HexToHash("0xb10c")
	l.TxIndex = 2

	data, err := encodeLog(l)
	require.NoError(t, err)

	got, err := decodeLog(data)
	require.NoError(t, err)
	require.Equal(t, l, got)

	// a log without topics or data still round-trips
	bare := types.Log{Address: contract, TxHash: common.HexToHash("0x1"), BlockNumber: 1}
	data, err = encodeLog(bare)
	require.NoError(t, err)
	got, err = decodeLog(data)
	require.NoError(t, err)
	require.Empty(t, got.Topics)
	require.Empty(t, got.Data)
	require.Equal(t, bare.TxHash, got.TxHash)

	_, err = decodeLog([]byte(`{"address":"0x0"}`))
	require.Error(t, err)
}

func TestQuarantineStore(t *testing.T) {
	t.Parallel()

	q := NewQuarantineStore(helpers.NewTestDB(t, "quarantine.sqlite"), logger.NewNopLogger(), nil)

	first := noopLog(t, 20, "0xaa", 0)
	second := noopLog(t, 20, "0xaa", 1)
	earlier := noopLog(t, 5, "0xbb", 0)

	require.NoError(t, q.Put(first, errors.New("boom")))
	require.NoError(t, q.Put(second, errors.New("boom")))
	require.NoError(t, q.Put(earlier, errors.New("boom")))
	require.NoError(t, q.Put(first, errors.New("still broken")))

	n, err := q.Count()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	rows, err := q.List(0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, uint64(5), rows[0].BlockNumber)
	require.Equal(t, first.TxHash, rows[1].TxHash)
	require.Equal(t, uint(0), rows[1].LogIndex)
	require.Equal(t, 2, rows[1].Attempts)
	require.Equal(t, "still broken", rows[1].Error)
	require.Equal(t, 1, rows[2].Attempts)

	page, err := q.List(1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, rows[1].TxHash, page[0].TxHash)

	logs, err := q.Logs()
	require.NoError(t, err)
	require.Equal(t, []types.Log{earlier, first, second}, logs)

	require.NoError(t, q.Remove(first.TxHash, first.Index))
	require.NoError(t, q.Remove(first.TxHash, first.Index))

	n, err = q.Count()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

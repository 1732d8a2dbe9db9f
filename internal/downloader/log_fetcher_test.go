package downloader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/internal/rpc/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type dataError struct{ data string }

func (e *dataError) Error() string  { return "query failed" }
func (e *dataError) ErrorData() any { return e.data }

func tooManyResults(suggestion string) error {
	return &dataError{data: "Query returned more than 10000 results." + suggestion}
}

// rangeRecorder answers GetLogs with one log per block and records the ranges asked for.
type rangeRecorder struct {
	mu     sync.Mutex
	ranges [][2]uint64
	reject func(from, to uint64) error
}

func (r *rangeRecorder) getLogs(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	from, to := q.FromBlock.Uint64(), q.ToBlock.Uint64()

	r.mu.Lock()
	r.ranges = append(r.ranges, [2]uint64{from, to})
	r.mu.Unlock()

	if r.reject != nil {
		if err := r.reject(from, to); err != nil {
			return nil, err
		}
	}

	var logs []types.Log
	for b := from; b <= to; b++ {
		logs = append(logs, types.Log{BlockNumber: b, TxHash: common.BigToHash(common.Big1), Address: contract})
	}
	return logs, nil
}

func collect(blocks *[]uint64) emitFunc {
	return func(_ context.Context, l types.Log) error {
		*blocks = append(*blocks, l.BlockNumber)
		return nil
	}
}

func TestLogFetcher_Chunks(t *testing.T) {
	t.Parallel()

	client := mocks.NewEthClient(t)
	rec := &rangeRecorder{}
	client.EXPECT().GetLogs(mock.Anything, mock.Anything).RunAndReturn(rec.getLogs)

	lf := NewLogFetcher(client, []common.Address{contract}, nil, 4, logger.NewNopLogger())

	var blocks []uint64
	require.NoError(t, lf.FetchRange(context.Background(), 10, 19, collect(&blocks)))

	require.Equal(t, [][2]uint64{{10, 13}, {14, 17}, {18, 19}}, rec.ranges)
	require.Len(t, blocks, 10)
	require.Equal(t, uint64(10), blocks[0])
	require.Equal(t, uint64(19), blocks[9])
}

func TestLogFetcher_FiltersByEventTopics(t *testing.T) {
	t.Parallel()

	topics := newDecoder(t).Topics()
	require.NotEmpty(t, topics)

	client := mocks.NewEthClient(t)
	client.EXPECT().GetLogs(mock.Anything, mock.MatchedBy(func(q ethereum.FilterQuery) bool {
		return len(q.Topics) == 1 && len(q.Topics[0]) == len(topics) && q.Topics[0][0] == topics[0] &&
			len(q.Addresses) == 1 && q.Addresses[0] == contract
	})).Return(nil, nil).Twice()

	lf := NewLogFetcher(client, []common.Address{contract}, topics, 5, logger.NewNopLogger())
	require.NoError(t, lf.FetchRange(context.Background(), 1, 10, collect(new([]uint64))))

	require.Empty(t, logFilter([]common.Address{contract}, nil).Topics)
}

func TestLogFetcher_TooManyResults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		reject func(from, to uint64) error
		ranges [][2]uint64
	}{
		{
			name: "halves without a suggestion",
			reject: func(from, to uint64) error {
				if to-from >= 4 {
					return tooManyResults("")
				}
				return nil
			},
			ranges: [][2]uint64{{0, 7}, {0, 3}, {4, 7}},
		},
		{
			name: "follows the suggested range",
			reject: func(from, to uint64) error {
				if from == 0 && to == 7 {
					return tooManyResults(" Try with this block range [0x0, 0x5].")
				}
				return nil
			},
			ranges: [][2]uint64{{0, 7}, {0, 5}, {6, 7}},
		},
		{
			name: "ignores a suggestion that does not start at the window",
			reject: func(from, to uint64) error {
				if from == 0 && to == 7 {
					return tooManyResults(" Try with this block range [0x2, 0x5].")
				}
				return nil
			},
			ranges: [][2]uint64{{0, 7}, {0, 3}, {4, 7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := mocks.NewEthClient(t)
			rec := &rangeRecorder{reject: tt.reject}
			client.EXPECT().GetLogs(mock.Anything, mock.Anything).RunAndReturn(rec.getLogs)

			lf := NewLogFetcher(client, []common.Address{contract}, nil, 8, logger.NewNopLogger())

			var blocks []uint64
			require.NoError(t, lf.FetchRange(context.Background(), 0, 7, collect(&blocks)))
			require.Equal(t, tt.ranges, rec.ranges)
			require.Equal(t, []uint64{0, 1, 2, 3, 4, 5, 6, 7}, blocks)
		})
	}
}

func TestLogFetcher_Errors(t *testing.T) {
	t.Parallel()

	t.Run("single block with too many logs", func(t *testing.T) {
		t.Parallel()

		client := mocks.NewEthClient(t)
		client.EXPECT().GetLogs(mock.Anything, mock.Anything).Return(nil, tooManyResults(""))

		lf := NewLogFetcher(client, []common.Address{contract}, nil, 1, logger.NewNopLogger())
		err := lf.FetchRange(context.Background(), 3, 3, collect(new([]uint64)))
		require.ErrorContains(t, err, "single block 3")
	})

	t.Run("node error", func(t *testing.T) {
		t.Parallel()

		client := mocks.NewEthClient(t)
		client.EXPECT().GetLogs(mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		lf := NewLogFetcher(client, []common.Address{contract}, nil, 10, logger.NewNopLogger())
		err := lf.FetchRange(context.Background(), 0, 5, collect(new([]uint64)))
		require.ErrorContains(t, err, "connection refused")
	})

	t.Run("emit error stops the scan", func(t *testing.T) {
		t.Parallel()

		client := mocks.NewEthClient(t)
		rec := &rangeRecorder{}
		client.EXPECT().GetLogs(mock.Anything, mock.Anything).RunAndReturn(rec.getLogs).Once()

		lf := NewLogFetcher(client, []common.Address{contract}, nil, 2, logger.NewNopLogger())
		err := lf.FetchRange(context.Background(), 0, 5, func(context.Context, types.Log) error {
			return fmt.Errorf("queue closed")
		})
		require.ErrorContains(t, err, "queue closed")
	})
}

package downloader

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	irpc "github.com/goran-ethernal/TicketIndexor/internal/rpc"
	pkgrpc "github.com/goran-ethernal/TicketIndexor/pkg/rpc"
)

// LogFetcher scans historical block ranges for the contract logs.
type LogFetcher struct {
	rpc       pkgrpc.EthClient
	filter    ethereum.FilterQuery
	chunkSize uint64
	log       *logger.Logger
}

// logFilter matches logs emitted by addresses whose topic0 is one of topics.
// With no topics every log of the contracts matches.
func logFilter(addresses []ethcommon.Address, topics []ethcommon.Hash) ethereum.FilterQuery {
	q := ethereum.FilterQuery{Addresses: addresses}
	if len(topics) > 0 {
		q.Topics = [][]ethcommon.Hash{topics}
	}
	return q
}

// NewLogFetcher creates a new LogFetcher instance.
func NewLogFetcher(rpcClient pkgrpc.EthClient, addresses []ethcommon.Address, topics []ethcommon.Hash,
	chunkSize uint64, log *logger.Logger) *LogFetcher {
	if chunkSize == 0 {
		chunkSize = 1
	}

	return &LogFetcher{
		rpc:       rpcClient,
		filter:    logFilter(addresses, topics),
		chunkSize: chunkSize,
		log:       log.WithComponent(common.ComponentLogFetcher),
	}
}

// FetchRange scans [fromBlock, toBlock] in chunks and passes every log to emit in
// chain order. It stops at the first error returned by the node or by emit.
func (lf *LogFetcher) FetchRange(
	ctx context.Context,
	fromBlock, toBlock uint64,
	emit func(context.Context, types.Log) error,
) error {
	lf.log.Infow("scanning range", "from_block", fromBlock, "to_block", toBlock)

	total := 0
	for fromBlock <= toBlock {
		end := min(fromBlock+lf.chunkSize-1, toBlock)

		logs, fetchedTo, err := lf.fetchLogsWithRetry(ctx, fromBlock, end)
		if err != nil {
			return err
		}

		for _, l := range logs {
			if err := emit(ctx, l); err != nil {
				return err
			}
		}
		total += len(logs)

		lf.log.Debugw("fetched range", "from_block", fromBlock, "to_block", fetchedTo, "logs_count", len(logs))
		fromBlock = fetchedTo + 1
	}

	lf.log.Infow("range scanned", "logs_count", total)
	return nil
}

// fetchLogsWithRetry narrows the range until the node accepts the query and
// returns the logs together with the last block they cover.
func (lf *LogFetcher) fetchLogsWithRetry(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, uint64, error) {
	query := lf.filter
	query.FromBlock = new(big.Int).SetUint64(fromBlock)
	query.ToBlock = new(big.Int).SetUint64(toBlock)

	logs, err := lf.rpc.GetLogs(ctx, query)
	if err == nil {
		return logs, toBlock, nil
	}

	ok, errData := irpc.IsTooManyResultsError(err)
	if !ok {
		return nil, 0, fmt.Errorf("failed to fetch logs %d-%d: %w", fromBlock, toBlock, err)
	}
	if fromBlock == toBlock {
		return nil, 0, fmt.Errorf("cannot split range further, single block %d has too many logs", fromBlock)
	}

	// Only a suggestion that starts at fromBlock and shrinks the window keeps the scan contiguous.
	newTo := fromBlock + (toBlock-fromBlock)/2 //nolint:mnd
	if suggestedFrom, suggestedTo, ok := irpc.ParseSuggestedBlockRange(errData); ok &&
		suggestedFrom == fromBlock && suggestedTo >= fromBlock && suggestedTo < toBlock {
		newTo = suggestedTo
	}

	RangeSplitInc()
	lf.log.Infof("too many logs, retrying with block range %d to %d (original range %d to %d)",
		fromBlock, newTo, fromBlock, toBlock)

	return lf.fetchLogsWithRetry(ctx, fromBlock, newTo)
}

package downloader

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// encodeLog serializes a log in the node's JSON format, which round-trips every
// field the decoder reads.
func encodeLog(l types.Log) ([]byte, error) {
	if l.Topics == nil {
		l.Topics = []common.Hash{}
	}
	if l.Data == nil {
		l.Data = []byte{}
	}

	data, err := json.Marshal(&l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode log %s:%d: %w", l.TxHash.Hex(), l.Index, err)
	}
	return data, nil
}

func decodeLog(data []byte) (types.Log, error) {
	var l types.Log
	if err := json.Unmarshal(data, &l); err != nil {
		return types.Log{}, fmt.Errorf("failed to decode log: %w", err)
	}
	return l, nil
}

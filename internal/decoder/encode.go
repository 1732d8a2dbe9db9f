package decoder

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// EncodeLog ABI-encodes module's event name with args into a log, the way a
// contract would emit it. Only the topics and data are filled in.
func EncodeLog(module, name string, args map[string]any) (types.Log, error) {
	parsed, err := ParseABI(module)
	if err != nil {
		return types.Log{}, err
	}

	ev, ok := parsed.Events[name]
	if !ok {
		return types.Log{}, fmt.Errorf("%s has no event %s", module, name)
	}

	topics := []common.Hash{ev.ID}
	var data []any

	for _, in := range ev.Inputs {
		v, ok := args[in.Name]
		if !ok {
			return types.Log{}, fmt.Errorf("%s.%s: missing argument %q", module, name, in.Name)
		}

		if !in.Indexed {
			data = append(data, v)
			continue
		}

		t, err := abi.MakeTopics([]any{v})
		if err != nil {
			return types.Log{}, fmt.Errorf("%s.%s: topic %q: %w", module, name, in.Name, err)
		}
		topics = append(topics, t[0][0])
	}

	packed, err := ev.Inputs.NonIndexed().Pack(data...)
	if err != nil {
		return types.Log{}, fmt.Errorf("%s.%s: pack data: %w", module, name, err)
	}

	return types.Log{Topics: topics, Data: packed}, nil
}

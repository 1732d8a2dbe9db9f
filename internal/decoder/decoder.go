package decoder

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrNotRecognized is returned for logs whose leading topic no known event declares.
var ErrNotRecognized = errors.New("log not recognized")

// DecodeError is returned when the leading topic matched a known event but no
// candidate schema accepted the log.
type DecodeError struct {
	Event string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Event, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type candidate struct {
	event   abi.Event
	indexed abi.Arguments
	schema  Schema
}

// Decoder turns raw logs into typed events. It performs no I/O and is safe for
// concurrent use once built.
type Decoder struct {
	byTopic map[common.Hash][]candidate
}

// New builds a decoder over every module ABI, in module order.
func New() (*Decoder, error) {
	d := &Decoder{byTopic: make(map[common.Hash][]candidate)}

	for _, module := range Modules {
		parsed, err := ParseABI(module)
		if err != nil {
			return nil, err
		}

		for name, ev := range parsed.Events {
			schema, ok := Lookup(module, name)
			if !ok {
				return nil, fmt.Errorf("no schema registered for %s", schemaKey(module, name))
			}

			var indexed abi.Arguments
			for _, in := range ev.Inputs {
				if in.Indexed {
					indexed = append(indexed, in)
				}
			}

			d.byTopic[ev.ID] = append(d.byTopic[ev.ID], candidate{event: ev, indexed: indexed, schema: schema})
		}
	}

	return d, nil
}

// Topics returns every event signature the decoder knows, in ascending order.
// It is used as the topic0 filter of log queries.
func (d *Decoder) Topics() []common.Hash {
	topics := make([]common.Hash, 0, len(d.byTopic))
	for t := range d.byTopic {
		topics = append(topics, t)
	}
	slices.SortFunc(topics, func(a, b common.Hash) int { return a.Cmp(b) })
	return topics
}

// Decode returns the typed event for log. Candidates sharing a signature
// (ERC721 and ERC20 Transfer) are tried in module order and the first one whose
// schema validates wins.
func (d *Decoder) Decode(log types.Log) (Event, error) {
	if len(log.Topics) == 0 {
		return nil, ErrNotRecognized
	}

	candidates := d.byTopic[log.Topics[0]]
	if len(candidates) == 0 {
		return nil, ErrNotRecognized
	}

	names := make([]string, 0, len(candidates))
	errs := make([]error, 0, len(candidates))

	for _, c := range candidates {
		names = append(names, c.schema.Key())

		ev, err := c.decode(log)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		ev.setSource(Meta{
			Contract:    log.Address,
			BlockNumber: log.BlockNumber,
			TxHash:      log.TxHash,
			LogIndex:    log.Index,
		})
		return ev, nil
	}

	return nil, &DecodeError{Event: strings.Join(names, "|"), Err: errors.Join(errs...)}
}

func (c candidate) decode(log types.Log) (Event, error) {
	if got := len(log.Topics) - 1; got != len(c.indexed) {
		return nil, fmt.Errorf("%s: expected %d indexed topics, got %d", c.schema.Key(), len(c.indexed), got)
	}

	fields := make(map[string]any, len(c.event.Inputs))
	if err := c.event.Inputs.UnpackIntoMap(fields, log.Data); err != nil {
		return nil, fmt.Errorf("%s: unpack data: %w", c.schema.Key(), err)
	}
	if err := abi.ParseTopicsIntoMap(fields, c.indexed, log.Topics[1:]); err != nil {
		return nil, fmt.Errorf("%s: parse topics: %w", c.schema.Key(), err)
	}

	return c.schema.Build(fields)
}

package rpc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockDataError struct {
	data any
}

func (m *mockDataError) Error() string  { return fmt.Sprint(m.data) }
func (m *mockDataError) ErrorData() any { return m.data }

const tooManyResults = "Query returned more than 20000 results. Try with this block range [0x7dfd25, 0x7e0fcc]."

func TestIsTooManyResultsError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantMatch bool
		wantData  string
	}{
		{name: "nil error"},
		{name: "plain error", err: errors.New("some other error")},
		{
			name:     "unrelated data error",
			err:      &mockDataError{data: "execution reverted"},
			wantData: "execution reverted",
		},
		{
			name:      "too many results",
			err:       &mockDataError{data: tooManyResults},
			wantMatch: true,
			wantData:  tooManyResults,
		},
		{
			name:      "wrapped too many results",
			err:       fmt.Errorf("eth_getLogs: %w", &mockDataError{data: tooManyResults}),
			wantMatch: true,
			wantData:  tooManyResults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotMatch, gotData := IsTooManyResultsError(tt.err)
			require.Equal(t, tt.wantMatch, gotMatch)
			require.Equal(t, tt.wantData, gotData)
		})
	}
}

func TestParseSuggestedBlockRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		errMsg   string
		wantFrom uint64
		wantTo   uint64
		wantOK   bool
	}{
		{name: "empty"},
		{name: "no range", errMsg: "Query returned more than 20000 results."},
		{name: "provider message", errMsg: tooManyResults, wantFrom: 8256805, wantTo: 8261580, wantOK: true},
		{name: "mixed case and spaces", errMsg: "[0x1aBc,   0x2DEF]", wantFrom: 6844, wantTo: 11759, wantOK: true},
		{name: "not hex", errMsg: "[0xZZZZ, 0x1234]"},
		{name: "first range wins", errMsg: "[0x10, 0x20] or [0x30, 0x40]", wantFrom: 16, wantTo: 32, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			from, to, ok := ParseSuggestedBlockRange(tt.errMsg)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantFrom, from)
			require.Equal(t, tt.wantTo, to)
		})
	}
}

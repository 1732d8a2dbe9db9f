package common

import (
	"strconv"
	"strings"
)

const bytesInMB = 1024 * 1024

// ParseUint64orHex parses a block number as returned by providers in error
// messages, either decimal or 0x-prefixed hex. A nil input is zero.
func ParseUint64orHex(val *string) (uint64, error) {
	if val == nil {
		return 0, nil
	}

	str, base := *val, 10
	if rest, ok := strings.CutPrefix(str, "0x"); ok {
		str, base = rest, 16
	}

	return strconv.ParseUint(str, base, 64)
}

// BytesToMB converts a byte count to whole megabytes.
func BytesToMB(bytes uint64) uint64 {
	return bytes / bytesInMB
}

// ToLowerWithTrim normalises config keys such as log levels and component names.
func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SplitList splits a comma separated list, dropping blanks and surrounding whitespace.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package content

import (
	"errors"
	"fmt"

	"github.com/goran-ethernal/TicketIndexor/internal/decoder"
	"github.com/mr-tron/base58"
)

// ErrInvalidMultihash is returned for multihashes whose size exceeds the digest or
// for identifiers that do not decode to a multihash.
var ErrInvalidMultihash = errors.New("invalid multihash")

// CID expands an on-chain multihash into its base58 content identifier.
// A zero size means no content and yields "".
func CID(mh decoder.Multihash) (string, error) {
	if mh.Size == 0 {
		return "", nil
	}
	if int(mh.Size) > len(mh.Digest) {
		return "", fmt.Errorf("%w: size %d exceeds digest length %d", ErrInvalidMultihash, mh.Size, len(mh.Digest))
	}

	buf := make([]byte, 0, 2+int(mh.Size)) //nolint:mnd
	buf = append(buf, mh.HashFunction, mh.Size)
	buf = append(buf, mh.Digest[:mh.Size]...)

	return base58.Encode(buf), nil
}

// ParseCID splits a base58 content identifier back into the triple a contract stores.
func ParseCID(cid string) (decoder.Multihash, error) {
	raw, err := base58.Decode(cid)
	if err != nil {
		return decoder.Multihash{}, fmt.Errorf("%w: %w", ErrInvalidMultihash, err)
	}
	if len(raw) < 2 {
		return decoder.Multihash{}, fmt.Errorf("%w: %d bytes", ErrInvalidMultihash, len(raw))
	}

	mh := decoder.Multihash{HashFunction: raw[0], Size: raw[1]}
	digest := raw[2:]
	if int(mh.Size) != len(digest) || len(digest) > len(mh.Digest) {
		return decoder.Multihash{}, fmt.Errorf("%w: size %d, digest %d bytes", ErrInvalidMultihash, mh.Size, len(digest))
	}
	copy(mh.Digest[:], digest)

	return mh, nil
}

package content

import (
	"testing"

	"github.com/goran-ethernal/TicketIndexor/internal/decoder"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

func sha256Multihash(seed byte) decoder.Multihash {
	mh := decoder.Multihash{HashFunction: 0x12, Size: 32}
	for i := range mh.Digest {
		mh.Digest[i] = seed + byte(i)
	}
	return mh
}

func TestCID(t *testing.T) {
	t.Parallel()

	t.Run("empty multihash", func(t *testing.T) {
		t.Parallel()

		cid, err := CID(decoder.Multihash{Digest: [32]byte{1}, HashFunction: 0x12})
		require.NoError(t, err)
		require.Empty(t, cid)
	})

	t.Run("sha2-256 gives a Qm identifier", func(t *testing.T) {
		t.Parallel()

		mh := sha256Multihash(7)
		cid, err := CID(mh)
		require.NoError(t, err)
		require.Len(t, cid, 46)
		require.Equal(t, "Qm", cid[:2])

		raw, err := base58.Decode(cid)
		require.NoError(t, err)
		require.Equal(t, []byte{0x12, 32}, raw[:2])
		require.Equal(t, mh.Digest[:], raw[2:])
	})

	t.Run("short digest is truncated to size", func(t *testing.T) {
		t.Parallel()

		mh := decoder.Multihash{Digest: [32]byte{0xaa, 0xbb, 0xcc}, HashFunction: 0x00, Size: 2}
		cid, err := CID(mh)
		require.NoError(t, err)
		require.Equal(t, base58.Encode([]byte{0x00, 2, 0xaa, 0xbb}), cid)
	})

	t.Run("size beyond digest", func(t *testing.T) {
		t.Parallel()

		_, err := CID(decoder.Multihash{HashFunction: 0x12, Size: 33})
		require.ErrorIs(t, err, ErrInvalidMultihash)
	})
}

func TestParseCID(t *testing.T) {
	t.Parallel()

	mh := sha256Multihash(1)
	cid, err := CID(mh)
	require.NoError(t, err)

	parsed, err := ParseCID(cid)
	require.NoError(t, err)
	require.Equal(t, mh, parsed)

	_, err = ParseCID("0OIl") // not base58
	require.ErrorIs(t, err, ErrInvalidMultihash)

	_, err = ParseCID(base58.Encode([]byte{0x12, 32, 1, 2}))
	require.ErrorIs(t, err, ErrInvalidMultihash)
}

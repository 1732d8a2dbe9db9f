package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
)

// Store is a content-addressed blob store.
type Store interface {
	// Get returns the bytes addressed by cid.
	Get(ctx context.Context, cid string) ([]byte, error)
	// Add stores data and returns its cid.
	Add(ctx context.Context, data []byte) (string, error)
}

// IPFSStore talks to an IPFS daemon over its HTTP API.
type IPFSStore struct {
	sh *shell.Shell
}

var _ Store = (*IPFSStore)(nil)

// NewIPFSStore connects to the IPFS HTTP API at url, e.g. "http://localhost:5001".
func NewIPFSStore(url string, timeout time.Duration) *IPFSStore {
	sh := shell.NewShell(url)
	if timeout > 0 {
		sh.SetTimeout(timeout)
	}
	return &IPFSStore{sh: sh}
}

// Get cats the object addressed by cid.
func (s *IPFSStore) Get(ctx context.Context, cid string) ([]byte, error) {
	resp, err := s.sh.Request("cat", cid).Send(ctx)
	if err != nil {
		return nil, fmt.Errorf("ipfs cat %s: %w", cid, err)
	}
	defer resp.Close()

	if resp.Error != nil {
		return nil, fmt.Errorf("ipfs cat %s: %w", cid, resp.Error)
	}

	data, err := io.ReadAll(resp.Output)
	if err != nil {
		return nil, fmt.Errorf("ipfs cat %s: read: %w", cid, err)
	}
	return data, nil
}

// Add pins data and returns its cid. The shell's add call takes no context, so
// ctx is only checked before the upload starts.
func (s *IPFSStore) Add(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cid, err := s.sh.Add(bytes.NewReader(data), shell.Pin(true))
	if err != nil {
		return "", fmt.Errorf("ipfs add: %w", err)
	}
	return cid, nil
}

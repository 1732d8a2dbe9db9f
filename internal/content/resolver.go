package content

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/decoder"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/pkg/config"
)

// Resolver expands multihashes and fetches the documents they address.
// Store errors are returned to the caller; cache errors are only logged.
type Resolver struct {
	store Store
	cache Cache
	log   *logger.Logger
}

// NewResolver creates a resolver. cache may be nil.
func NewResolver(store Store, cache Cache, log *logger.Logger) *Resolver {
	return &Resolver{store: store, cache: cache, log: log.WithComponent(common.ComponentContent)}
}

// NewResolverFromConfig builds the IPFS store and, when configured, the Redis cache.
// The returned function releases the Redis connection.
func NewResolverFromConfig(cfg config.ContentConfig, log *logger.Logger) (*Resolver, func() error, error) {
	store := NewIPFSStore(cfg.URL, cfg.Timeout.Duration)

	if cfg.Cache == nil {
		return NewResolver(store, nil, log), func() error { return nil }, nil
	}

	client, err := NewRedisClient(cfg.Cache.RedisURL)
	if err != nil {
		return nil, nil, err
	}

	cache := NewRedisCache(client, cfg.Cache.Prefix, cfg.Cache.TTL.Duration)
	return NewResolver(store, cache, log), client.Close, nil
}

// Fetch returns the raw document addressed by cid.
func (r *Resolver) Fetch(ctx context.Context, cid string) ([]byte, error) {
	if r.cache != nil {
		data, ok, err := r.cache.Get(ctx, cid)
		switch {
		case err != nil:
			r.log.Warnf("content cache lookup failed for %s: %v", cid, err)
		case ok:
			CacheHitInc()
			return data, nil
		default:
			CacheMissInc()
		}
	}

	start := time.Now()
	data, err := r.store.Get(ctx, cid)
	FetchDurationLog(time.Since(start))
	if err != nil {
		FetchErrorInc()
		return nil, err
	}

	r.log.Debugf("fetched %s (%d bytes) in %v", cid, len(data), time.Since(start))

	if r.cache != nil {
		if err := r.cache.Set(ctx, cid, data); err != nil {
			r.log.Warnf("content cache store failed for %s: %v", cid, err)
		}
	}

	return data, nil
}

func (r *Resolver) fetchJSON(ctx context.Context, cid string, v any) error {
	data, err := r.Fetch(ctx, cid)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("document %s is not valid JSON: %w", cid, err)
	}
	return nil
}

// Place resolves a place document. It returns a nil document and an empty cid when
// the multihash is empty.
func (r *Resolver) Place(ctx context.Context, mh decoder.Multihash) (*Place, string, error) {
	cid, err := CID(mh)
	if err != nil || cid == "" {
		return nil, "", err
	}

	var doc Place
	if err := r.fetchJSON(ctx, cid, &doc); err != nil {
		return nil, "", err
	}
	return &doc, cid, nil
}

// Event resolves an event document and, if it references one, its social document.
func (r *Resolver) Event(ctx context.Context, mh decoder.Multihash) (*EventMeta, *Social, string, error) {
	cid, err := CID(mh)
	if err != nil || cid == "" {
		return nil, nil, "", err
	}

	var doc EventMeta
	if err := r.fetchJSON(ctx, cid, &doc); err != nil {
		return nil, nil, "", err
	}

	if doc.SocialsCID == "" {
		return &doc, nil, cid, nil
	}

	social, err := r.socialByCID(ctx, doc.SocialsCID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("socials of %s: %w", cid, err)
	}
	return &doc, social, cid, nil
}

// Social resolves a social document addressed directly by a multihash.
func (r *Resolver) Social(ctx context.Context, mh decoder.Multihash) (*Social, error) {
	cid, err := CID(mh)
	if err != nil || cid == "" {
		return nil, err
	}
	return r.socialByCID(ctx, cid)
}

func (r *Resolver) socialByCID(ctx context.Context, cid string) (*Social, error) {
	var social Social
	if err := r.fetchJSON(ctx, cid, &social); err != nil {
		return nil, err
	}
	if err := social.Validate(); err != nil {
		return nil, fmt.Errorf("document %s: %w", cid, err)
	}
	return &social, nil
}

// AddJSON stores v as a JSON document and returns its cid.
func (r *Resolver) AddJSON(ctx context.Context, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return r.store.Add(ctx, data)
}

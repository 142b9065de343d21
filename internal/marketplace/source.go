package marketplace

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kamusis/pandora-cli/internal/cache"
	"github.com/kamusis/pandora-cli/internal/fetch"
)

// DefaultRawBase is the raw-content mirror of the public marketplace repository.
const DefaultRawBase = "https://raw.githubusercontent.com/gravity9-tech/pandora-marketplace/main"

// IndexFile is the name of the community index document.
const IndexFile = "community-index.json"

// DefaultTTL is how long fetched documents stay fresh.
const DefaultTTL = 5 * time.Minute

// Source provides the three remote documents the catalog is built from.
type Source interface {
	FetchIndex(ctx context.Context) (*CommunityIndex, error)
	FetchManifest(ctx context.Context, team string) (*TeamManifest, error)
	FetchRawContent(ctx context.Context, path string) (string, error)
}

// Endpoints locates the remote documents.
type Endpoints struct {
	// ManifestBase is the directory holding the index and {team}/manifest.json.
	ManifestBase string
	// RawBase is the repository root that component paths are relative to.
	RawBase string
}

// DefaultEndpoints points at the public marketplace repository.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		ManifestBase: DefaultRawBase + "/" + CommunityRoot,
		RawBase:      DefaultRawBase,
	}
}

// IndexURL returns the community index location.
func (e Endpoints) IndexURL() string {
	return strings.TrimRight(e.ManifestBase, "/") + "/" + IndexFile
}

// ManifestURL returns the manifest location for team.
func (e Endpoints) ManifestURL(team string) string {
	return strings.TrimRight(e.ManifestBase, "/") + "/" + url.PathEscape(team) + "/manifest.json"
}

// RawURL returns the raw-content location of a component path.
func (e Endpoints) RawURL(p string) string {
	segs := strings.Split(strings.TrimPrefix(p, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.TrimRight(e.RawBase, "/") + "/" + strings.Join(segs, "/")
}

// RemoteSource reads documents through a fetch.Fetcher.
type RemoteSource struct {
	fetcher   fetch.Fetcher
	endpoints Endpoints
}

// NewRemoteSource returns a Source backed by f.
func NewRemoteSource(f fetch.Fetcher, e Endpoints) *RemoteSource {
	return &RemoteSource{fetcher: f, endpoints: e}
}

// FetchIndex implements Source.
func (s *RemoteSource) FetchIndex(ctx context.Context) (*CommunityIndex, error) {
	var idx CommunityIndex
	if err := s.fetcher.FetchJSON(ctx, s.endpoints.IndexURL(), &idx); err != nil {
		return nil, fmt.Errorf("cannot fetch %s: %w", IndexFile, err)
	}
	return &idx, nil
}

// FetchManifest implements Source.
func (s *RemoteSource) FetchManifest(ctx context.Context, team string) (*TeamManifest, error) {
	var m TeamManifest
	if err := s.fetcher.FetchJSON(ctx, s.endpoints.ManifestURL(team), &m); err != nil {
		return nil, fmt.Errorf("cannot fetch manifest for team %s: %w", team, err)
	}
	return &m, nil
}

// FetchRawContent implements Source.
func (s *RemoteSource) FetchRawContent(ctx context.Context, p string) (string, error) {
	text, err := s.fetcher.FetchText(ctx, s.endpoints.RawURL(p))
	if err != nil {
		return "", fmt.Errorf("cannot fetch component %s: %w", p, err)
	}
	return text, nil
}

// CachedSource keeps documents from an underlying Source fresh for a TTL.
type CachedSource struct {
	src       Source
	ttl       time.Duration
	index     *cache.Cache[*CommunityIndex]
	manifests *cache.Cache[*TeamManifest]
	raw       *cache.Cache[string]
}

const indexKey = "community-index"

// NewCachedSource wraps src. A ttl of zero means DefaultTTL; a negative ttl
// disables storing.
func NewCachedSource(src Source, ttl time.Duration, clock cache.Clock) (*CachedSource, error) {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	index, err := cache.New[*CommunityIndex](1, clock)
	if err != nil {
		return nil, err
	}
	manifests, err := cache.New[*TeamManifest](cache.DefaultSize, clock)
	if err != nil {
		return nil, err
	}
	raw, err := cache.New[string](cache.DefaultSize, clock)
	if err != nil {
		return nil, err
	}
	return &CachedSource{src: src, ttl: ttl, index: index, manifests: manifests, raw: raw}, nil
}

// FetchIndex implements Source.
func (c *CachedSource) FetchIndex(ctx context.Context) (*CommunityIndex, error) {
	return c.index.Get(ctx, indexKey, c.src.FetchIndex, c.ttl)
}

// FetchManifest implements Source.
func (c *CachedSource) FetchManifest(ctx context.Context, team string) (*TeamManifest, error) {
	return c.manifests.Get(ctx, team, func(ctx context.Context) (*TeamManifest, error) {
		return c.src.FetchManifest(ctx, team)
	}, c.ttl)
}

// FetchRawContent implements Source.
func (c *CachedSource) FetchRawContent(ctx context.Context, p string) (string, error) {
	return c.raw.Get(ctx, p, func(ctx context.Context) (string, error) {
		return c.src.FetchRawContent(ctx, p)
	}, c.ttl)
}

// Purge forgets every cached document.
func (c *CachedSource) Purge() {
	c.index.Purge()
	c.manifests.Purge()
	c.raw.Purge()
}

package marketplace

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kamusis/pandora-cli/internal/cache"
)

// Options configures a Catalog.
type Options struct {
	// TTL is how long fetched documents stay fresh. Zero means DefaultTTL.
	TTL time.Duration
	// Clock drives cache staleness. Nil means the wall clock.
	Clock  cache.Clock
	Logger *log.Logger
}

// Catalog is the read surface over the remote marketplace. Documents are
// cached for a TTL; flattened lists are rebuilt on every call.
type Catalog struct {
	source     *CachedSource
	aggregator *Aggregator
	resolver   *Resolver
	logger     *log.Logger
}

// NewCatalog wraps src in a cache and returns a Catalog over it.
func NewCatalog(src Source, opts Options) (*Catalog, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cached, err := NewCachedSource(src, opts.TTL, opts.Clock)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		source:     cached,
		aggregator: NewAggregator(cached, logger),
		resolver:   NewResolver(cached),
		logger:     logger,
	}, nil
}

// Snapshot runs an aggregation pass over the cached documents.
func (c *Catalog) Snapshot(ctx context.Context) (*Snapshot, error) {
	return c.aggregator.Aggregate(ctx)
}

// ListFlatComponents returns every component in index order.
func (c *Catalog) ListFlatComponents(ctx context.Context) ([]FlatComponent, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Components, nil
}

// GetComponent fetches and parses one component.
func (c *Catalog) GetComponent(ctx context.Context, path string, opts ...ResolveOption) (*ParsedComponent, error) {
	return c.resolver.Resolve(ctx, path, opts...)
}

// Team returns the manifest of one team. Unlike Snapshot, a failure here is
// returned to the caller.
func (c *Catalog) Team(ctx context.Context, team string) (*TeamManifest, error) {
	return c.source.FetchManifest(ctx, team)
}

// Stats aggregates and summarizes the catalog.
func (c *Catalog) Stats(ctx context.Context) (Stats, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(snap), nil
}

// Describe returns a copy of comps with each description filled from the
// component's own frontmatter. Components that fail to load keep an empty
// description; the failures are logged.
func (c *Catalog) Describe(ctx context.Context, comps []FlatComponent) []FlatComponent {
	paths := make([]string, len(comps))
	for i, fc := range comps {
		paths[i] = fc.Path
	}
	results := settleAll(ctx, paths, func(ctx context.Context, p string) (string, error) {
		pc, err := c.resolver.Resolve(ctx, p)
		if err != nil {
			return "", err
		}
		return pc.Frontmatter.Description(), nil
	})

	out := make([]FlatComponent, len(comps))
	for i, fc := range comps {
		r := results[i]
		if r.Err != nil {
			c.logger.Warn("cannot load component description", "path", fc.Path, "err", r.Err)
		} else {
			fc.Description = r.Value
		}
		out[i] = fc
	}
	return out
}

// Refresh drops every cached document so the next call refetches.
func (c *Catalog) Refresh() {
	c.source.Purge()
}


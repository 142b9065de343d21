package marketplace

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kamusis/pandora-cli/internal/frontmatter"
)

// ErrInvalidPath is returned for component paths that cannot be used at all.
var ErrInvalidPath = errors.New("invalid component path")

// Resolver fetches and parses single components.
type Resolver struct {
	source Source
}

// NewResolver returns a Resolver reading from src.
func NewResolver(src Source) *Resolver {
	return &Resolver{source: src}
}

type resolveOptions struct {
	team string
}

// ResolveOption adjusts Resolve.
type ResolveOption func(*resolveOptions)

// WithTeam overrides the team name derived from the path.
func WithTeam(team string) ResolveOption {
	return func(o *resolveOptions) { o.team = team }
}

// Resolve fetches the document at path and returns it parsed. The type
// defaults to agent and the team to "" when the path does not encode them.
// Fetch failures are returned wrapped, never replaced by empty content.
func (r *Resolver) Resolve(ctx context.Context, path string, opts ...ResolveOption) (*ParsedComponent, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}

	raw, err := r.source.FetchRawContent(ctx, path)
	if err != nil {
		return nil, err
	}
	doc := frontmatter.Parse(raw)

	t, ok := ComponentTypeFromPath(path)
	if !ok {
		t = TypeAgent
	}
	team := o.team
	if team == "" {
		team, _ = ExtractTeamFromPath(path)
	}

	return &ParsedComponent{
		Frontmatter: doc.Frontmatter,
		Content:     doc.Content,
		Path:        path,
		Type:        t,
		TeamName:    team,
	}, nil
}

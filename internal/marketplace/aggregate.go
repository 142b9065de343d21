package marketplace

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ErrIndexUnavailable wraps any failure to load the community index.
var ErrIndexUnavailable = errors.New("community index unavailable")

// Snapshot is one aggregation pass: the index, every manifest that could be
// fetched, and the flattened component list built from them. It is not
// modified after Aggregate returns.
type Snapshot struct {
	Index *CommunityIndex
	// Teams is the full team list from the index, including teams whose
	// manifest failed to load.
	Teams []string
	// Manifests holds successful fetches only.
	Manifests map[string]*TeamManifest
	// Failed maps each team whose manifest could not be fetched to the error.
	Failed     map[string]error
	Components []FlatComponent

	byPath map[string]int
}

// ByPath looks up a component by its path. When several rows share a path
// the last one in list order wins.
func (s *Snapshot) ByPath(p string) (FlatComponent, bool) {
	i, ok := s.byPath[p]
	if !ok {
		return FlatComponent{}, false
	}
	return s.Components[i], true
}

// Missing returns the index teams that have no manifest, in index order.
func (s *Snapshot) Missing() []string {
	var out []string
	for _, t := range uniqueTeams(s.Teams) {
		if _, ok := s.Manifests[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// Aggregator builds snapshots from a Source.
type Aggregator struct {
	source Source
	logger *log.Logger
}

// NewAggregator returns an Aggregator. A nil logger discards output.
func NewAggregator(src Source, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Aggregator{source: src, logger: logger}
}

// Aggregate fetches the index, then every team manifest concurrently.
// Manifest failures are logged and the team is left out; only an index
// failure fails the pass.
func (a *Aggregator) Aggregate(ctx context.Context) (*Snapshot, error) {
	idx, err := a.source.FetchIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
	}

	teams := uniqueTeams(idx.Teams)
	results := settleAll(ctx, teams, a.source.FetchManifest)

	manifests := make(map[string]*TeamManifest, len(teams))
	failed := map[string]error{}
	for _, r := range results {
		if r.Err != nil {
			a.logger.Warn("team manifest unavailable", "team", r.Key, "err", r.Err)
			failed[r.Key] = r.Err
			continue
		}
		if r.Value == nil {
			failed[r.Key] = fmt.Errorf("empty manifest for team %s", r.Key)
			continue
		}
		manifests[r.Key] = r.Value
	}

	comps := a.flatten(teams, manifests)
	snap := &Snapshot{
		Index:      idx,
		Teams:      append([]string(nil), idx.Teams...),
		Manifests:  manifests,
		Failed:     failed,
		Components: comps,
		byPath:     a.indexByPath(comps),
	}
	a.logger.Debug("aggregated catalog", "teams", len(teams), "manifests", len(manifests), "components", len(comps))
	return snap, nil
}

// Flatten builds the component list for manifests in team order, then type
// order, then manifest order. Teams without a manifest contribute nothing.
func Flatten(teams []string, manifests map[string]*TeamManifest) []FlatComponent {
	return (&Aggregator{logger: log.New(io.Discard)}).flatten(teams, manifests)
}

func (a *Aggregator) flatten(teams []string, manifests map[string]*TeamManifest) []FlatComponent {
	out := []FlatComponent{}
	for _, team := range uniqueTeams(teams) {
		m, ok := manifests[team]
		if !ok || m == nil {
			continue
		}
		for _, t := range ComponentTypes {
			for _, entry := range m.Components.Entries(t) {
				n := Normalize(entry)
				if n.Name == "" {
					a.logger.Debug("skipping manifest entry without a name", "team", team, "type", t)
					continue
				}
				p := BuildComponentPath(team, t, n.Name)
				out = append(out, FlatComponent{
					ID:       p,
					Name:     n.Name,
					Type:     t,
					TeamName: team,
					Path:     p,
					Labels:   n.Labels,
				})
			}
		}
	}
	return out
}

func (a *Aggregator) indexByPath(comps []FlatComponent) map[string]int {
	byPath := make(map[string]int, len(comps))
	for i, c := range comps {
		if prev, ok := byPath[c.Path]; ok {
			a.logger.Warn("duplicate component path, later entry wins",
				"path", c.Path, "previous_team", comps[prev].TeamName, "team", c.TeamName)
		}
		byPath[c.Path] = i
	}
	return byPath
}

func uniqueTeams(teams []string) []string {
	seen := make(map[string]bool, len(teams))
	out := make([]string, 0, len(teams))
	for _, t := range teams {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kamusis/pandora-cli/internal/marketplace"
	"github.com/kamusis/pandora-cli/internal/search"
	"github.com/spf13/cobra"
)

// filterFlags are the list/search narrowing flags.
type filterFlags struct {
	types    []string
	teams    []string
	labels   []string
	describe bool
	asJSON   bool
}

func (f *filterFlags) bind(c *cobra.Command) {
	c.Flags().StringSliceVarP(&f.types, "type", "t", nil, "Component type to include (repeatable): agent, skill, command, hook, mcp, workflow")
	c.Flags().StringSliceVar(&f.teams, "team", nil, "Team to include (repeatable)")
	c.Flags().StringSliceVarP(&f.labels, "label", "l", nil, "Label to include (repeatable)")
	c.Flags().BoolVar(&f.describe, "describe", false, "Fetch each component to show its description")
	c.Flags().BoolVar(&f.asJSON, "json", false, "Print results as JSON")
	c.MarkFlagsMutuallyExclusive("team", "label")
}

// state builds the filter state for query.
func (f *filterFlags) state(query string) (search.FilterState, error) {
	fs := search.FilterState{Query: query}
	for _, raw := range f.types {
		t, err := marketplace.ParseComponentType(raw)
		if err != nil {
			return fs, err
		}
		fs.Types = append(fs.Types, t)
	}
	switch {
	case len(f.teams) > 0:
		fs.Dimension = search.TeamFilter(trimAll(f.teams)...)
	case len(f.labels) > 0:
		fs.Dimension = search.LabelFilter(trimAll(f.labels)...)
	}
	return fs, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// withDescriptions fills descriptions when --describe is set.
func (f *filterFlags) withDescriptions(ctx context.Context, cat *marketplace.Catalog, comps []marketplace.FlatComponent) []marketplace.FlatComponent {
	if !f.describe || len(comps) == 0 {
		return comps
	}
	return cat.Describe(ctx, comps)
}

func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("cannot encode output: %w", err)
	}
	return nil
}

// printComponents prints comps grouped by type in the order they first
// appear, keeping the incoming order inside each group.
func printComponents(comps []marketplace.FlatComponent, scores map[string]float64) {
	var order []marketplace.ComponentType
	groups := make(map[marketplace.ComponentType][]marketplace.FlatComponent)
	for _, c := range comps {
		if _, ok := groups[c.Type]; !ok {
			order = append(order, c.Type)
		}
		groups[c.Type] = append(groups[c.Type], c)
	}

	for _, t := range order {
		items := groups[t]
		printBullet(fmt.Sprintf("%s (%d):", typeHeading(t), len(items)))
		for _, c := range items {
			head := fmt.Sprintf("%s  %s", nameStyle.Render(c.TeamName+"/"+c.Name), mutedStyle.Render(strings.Join(c.Labels, ", ")))
			if s, ok := scores[c.Path]; ok {
				head = fmt.Sprintf("%s  %s", head, mutedStyle.Render(fmt.Sprintf("[%.3f]", s)))
			}
			fmt.Fprintf(stdout, "  %s\n", head)
			if d := strings.TrimSpace(c.Description); d != "" {
				fmt.Fprintf(stdout, "    %s\n", d)
			}
		}
	}
}

func typeHeading(t marketplace.ComponentType) string {
	if t.Valid() {
		return t.TitlePlural()
	}
	return string(t)
}

package search

import "github.com/kamusis/pandora-cli/internal/marketplace"

// DimensionKind tells how the second filter dimension narrows the list.
type DimensionKind int

const (
	// DimensionNone keeps every component.
	DimensionNone DimensionKind = iota
	// DimensionTeam keeps components of the selected teams.
	DimensionTeam
	// DimensionLabel keeps components carrying any selected label.
	DimensionLabel
)

func (k DimensionKind) String() string {
	switch k {
	case DimensionTeam:
		return "team"
	case DimensionLabel:
		return "label"
	}
	return "none"
}

// Dimension is the team-or-label filter. Team and label selection cannot be
// combined; the zero value selects nothing and filters nothing.
type Dimension struct {
	kind   DimensionKind
	values []string
	set    map[string]bool
}

// TeamFilter selects components of any of teams.
func TeamFilter(teams ...string) Dimension {
	return newDimension(DimensionTeam, teams)
}

// LabelFilter selects components carrying any of labels.
func LabelFilter(labels ...string) Dimension {
	return newDimension(DimensionLabel, labels)
}

func newDimension(kind DimensionKind, values []string) Dimension {
	d := Dimension{kind: kind, set: make(map[string]bool, len(values))}
	for _, v := range values {
		if v == "" || d.set[v] {
			continue
		}
		d.set[v] = true
		d.values = append(d.values, v)
	}
	return d
}

// Kind reports which dimension is configured.
func (d Dimension) Kind() DimensionKind { return d.kind }

// Values returns the selected teams or labels in the order given.
func (d Dimension) Values() []string { return append([]string(nil), d.values...) }

// Empty reports whether nothing is selected.
func (d Dimension) Empty() bool { return len(d.values) == 0 }

// Match reports whether c passes the filter.
func (d Dimension) Match(c marketplace.FlatComponent) bool {
	if d.Empty() {
		return true
	}
	switch d.kind {
	case DimensionTeam:
		return d.set[c.TeamName]
	case DimensionLabel:
		return c.HasLabel(d.set)
	}
	return true
}

// FilterState is everything the list and search views narrow by.
type FilterState struct {
	Types     []marketplace.ComponentType
	Dimension Dimension
	Query     string
}

// Result is one ranked match. Score is 0 for an exact match and grows as the
// match gets worse; unranked results have score 0.
type Result struct {
	Component marketplace.FlatComponent
	Score     float64
}

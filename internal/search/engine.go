// Package search filters and ranks the flattened component list.
package search

import (
	"strings"
	"unicode/utf8"

	"github.com/kamusis/pandora-cli/internal/marketplace"
)

// DefaultSuggestLimit is the number of suggestions returned when no limit is
// given.
const DefaultSuggestLimit = 5

// minSuggestRunes is the shortest query that produces suggestions.
const minSuggestRunes = 2

// doc is a component with its searchable fields pre-folded.
type doc struct {
	name []rune
	desc []rune
	team []rune
}

func (d doc) text(f field) []rune {
	switch f {
	case fieldName:
		return d.name
	case fieldDescription:
		return d.desc
	case fieldTeam:
		return d.team
	}
	return nil
}

// Engine searches one immutable component list.
type Engine struct {
	comps []marketplace.FlatComponent
	docs  []doc
}

// NewEngine indexes comps. The slice is copied.
func NewEngine(comps []marketplace.FlatComponent) *Engine {
	e := &Engine{
		comps: append([]marketplace.FlatComponent(nil), comps...),
		docs:  make([]doc, len(comps)),
	}
	for i, c := range comps {
		e.docs[i] = doc{
			name: []rune(foldText(c.Name)),
			desc: []rune(foldText(c.Description)),
			team: []rune(foldText(c.TeamName)),
		}
	}
	return e
}

// Len returns the number of indexed components.
func (e *Engine) Len() int { return len(e.comps) }

// Search applies fs and returns the surviving components: in list order when
// the query is blank, best match first otherwise.
func (e *Engine) Search(fs FilterState) []marketplace.FlatComponent {
	return components(e.Results(fs))
}

// Results is Search with scores attached.
func (e *Engine) Results(fs FilterState) []Result {
	idx := e.filter(fs)
	query := strings.TrimSpace(fs.Query)
	if query == "" {
		out := make([]Result, len(idx))
		for i, ix := range idx {
			out[i] = Result{Component: e.comps[ix]}
		}
		return out
	}
	return e.rank(idx, query, Threshold, weightsFor(fs.Dimension.Kind()))
}

// Suggest ranks the whole list against query with the stricter threshold,
// ignoring filters, and returns at most limit components. Queries shorter
// than two characters return nothing.
func (e *Engine) Suggest(query string, limit int) []marketplace.FlatComponent {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSuggestRunes {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	all := make([]int, len(e.comps))
	for i := range all {
		all[i] = i
	}
	res := e.rank(all, query, SuggestThreshold, teamModeWeights)
	if len(res) > limit {
		res = res[:limit]
	}
	return components(res)
}

// filter returns the indexes of components passing the type and
// team-or-label filters, in list order.
func (e *Engine) filter(fs FilterState) []int {
	types := make(map[marketplace.ComponentType]bool, len(fs.Types))
	for _, t := range fs.Types {
		types[t] = true
	}
	out := make([]int, 0, len(e.comps))
	for i, c := range e.comps {
		if len(types) > 0 && !types[c.Type] {
			continue
		}
		if !fs.Dimension.Match(c) {
			continue
		}
		out = append(out, i)
	}
	return out
}

func (e *Engine) rank(idx []int, query string, threshold float64, weights []weightedField) []Result {
	pattern := []rune(foldText(query))
	if len(pattern) == 0 {
		return []Result{}
	}

	out := make([]Result, 0, len(idx))
	scores := make([]float64, 0, len(weights))
	ws := make([]float64, 0, len(weights))
	for _, ix := range idx {
		d := e.docs[ix]
		scores, ws = scores[:0], ws[:0]
		exactName := false
		for _, w := range weights {
			s, ok := fieldScore(pattern, d.text(w.field), threshold)
			if !ok {
				continue
			}
			if w.field == fieldName && s == 0 {
				exactName = true
			}
			scores = append(scores, s)
			ws = append(ws, w.weight)
		}
		if len(scores) == 0 {
			continue
		}
		score := combine(scores, ws)
		if exactName {
			// A query equal to the name always ranks ahead of partial hits.
			score = 0
		}
		out = append(out, Result{Component: e.comps[ix], Score: score})
	}
	sortResults(out)
	return out
}

func components(res []Result) []marketplace.FlatComponent {
	out := make([]marketplace.FlatComponent, len(res))
	for i, r := range res {
		out[i] = r.Component
	}
	return out
}

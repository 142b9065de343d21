package cmd

import (
	"fmt"
	"strings"

	"github.com/kamusis/pandora-cli/internal/marketplace"
	"github.com/kamusis/pandora-cli/internal/search"
	"github.com/spf13/cobra"
)

var (
	searchFlags       filterFlags
	flagSearchLimit   int
	flagSearchSuggest bool
	flagSearchScores  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search components by name, description and team",
	Long: `Search ranks components by how closely their name, description and team
match the query. Typos are tolerated. With --label the team name is not
searched. --suggest ignores the filters and returns a few close matches, the
way an autocomplete box would.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchFlags.bind(searchCmd)
	searchCmd.Flags().IntVarP(&flagSearchLimit, "limit", "k", 0, "Maximum number of results (0 = all; suggestions default to 5)")
	searchCmd.Flags().BoolVar(&flagSearchSuggest, "suggest", false, "Return autocomplete suggestions over the whole catalog")
	searchCmd.Flags().BoolVar(&flagSearchScores, "scores", false, "Show match scores (0 is exact)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	fs, err := searchFlags.state(query)
	if err != nil {
		return err
	}
	cat, svc, err := openSearch()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if flagSearchSuggest {
		comps, err := svc.Suggest(ctx, query, flagSearchLimit)
		if err != nil {
			return explainCatalogErr(err)
		}
		comps = searchFlags.withDescriptions(ctx, cat, comps)
		if searchFlags.asJSON {
			return printJSON(comps)
		}
		printSearchHeader(query, len(comps))
		for _, c := range comps {
			printInfo(c.Type.Title(), c.TeamName+"/"+c.Name)
		}
		return nil
	}

	results, err := svc.Search(ctx, fs)
	if err != nil {
		return explainCatalogErr(err)
	}
	if flagSearchLimit > 0 && len(results) > flagSearchLimit {
		results = results[:flagSearchLimit]
	}
	comps := make([]marketplace.FlatComponent, len(results))
	var scores map[string]float64
	if flagSearchScores {
		scores = make(map[string]float64, len(results))
	}
	for i, r := range results {
		comps[i] = r.Component
		if scores != nil {
			scores[r.Component.Path] = r.Score
		}
	}
	comps = searchFlags.withDescriptions(ctx, cat, comps)

	if searchFlags.asJSON {
		return printJSON(searchJSON(comps, results))
	}
	printSearchHeader(query, len(comps))
	if len(comps) == 0 {
		printMiss("", "no components match; try fewer filters or a shorter query")
		return nil
	}
	printComponents(comps, scores)
	return nil
}

type scoredComponent struct {
	marketplace.FlatComponent
	Score float64 `json:"score"`
}

func searchJSON(comps []marketplace.FlatComponent, results []search.Result) []scoredComponent {
	out := make([]scoredComponent, len(comps))
	for i, c := range comps {
		out[i] = scoredComponent{FlatComponent: c, Score: results[i].Score}
	}
	return out
}

func printSearchHeader(query string, n int) {
	fmt.Fprintf(stdout, "\npandora search %q\n\n", query)
	fmt.Fprintf(stdout, "Results (%d found):\n", n)
}

package cmd

import (
	"fmt"
	"sort"

	"github.com/kamusis/pandora-cli/internal/marketplace"
	"github.com/spf13/cobra"
)

var flagStatsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show component counts by type, team and label",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsJSON, "json", false, "Print statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	st, err := cat.Stats(cmd.Context())
	if err != nil {
		return explainCatalogErr(err)
	}
	if flagStatsJSON {
		return printJSON(st)
	}

	printSection("Community")
	fmt.Fprintf(stdout, "%d teams, %d components\n", st.TotalTeams, st.TotalComponents)

	printBullet("By type:")
	width := 0
	for _, t := range marketplace.ComponentTypes {
		width = max(width, len(t.TitlePlural()))
	}
	for _, t := range marketplace.ComponentTypes {
		printKV(t.TitlePlural(), fmt.Sprint(st.ByType[t]), width)
	}

	printBullet("By team:")
	printCounts(st.ByTeam)

	printBullet("By label:")
	printCounts(st.ByLabel)
	return nil
}

type count struct {
	key string
	n   int
}

// sortedCounts orders m by count descending, then key.
func sortedCounts(m map[string]int) []count {
	out := make([]count, 0, len(m))
	for k, n := range m {
		out = append(out, count{k, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return out[i].key < out[j].key
	})
	return out
}

func printCounts(m map[string]int) {
	if len(m) == 0 {
		printMiss("", "none")
		return
	}
	counts := sortedCounts(m)
	width := 0
	for _, c := range counts {
		width = max(width, len(c.key))
	}
	for _, c := range counts {
		printKV(c.key, fmt.Sprint(c.n), width)
	}
}

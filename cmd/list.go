package cmd

import (
	"fmt"

	"github.com/kamusis/pandora-cli/internal/search"
	"github.com/spf13/cobra"
)

var listFlags filterFlags

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog components, optionally filtered by type, team or label",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listFlags.bind(listCmd)
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	fs, err := listFlags.state("")
	if err != nil {
		return err
	}
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	snap, err := cat.Snapshot(ctx)
	if err != nil {
		return explainCatalogErr(err)
	}
	comps := search.NewEngine(snap.Components).Search(fs)
	comps = listFlags.withDescriptions(ctx, cat, comps)

	if listFlags.asJSON {
		return printJSON(comps)
	}

	printSection("Components")
	fmt.Fprintf(stdout, "%d of %d components\n", len(comps), len(snap.Components))
	for _, team := range snap.Missing() {
		printWarn(team, "manifest unavailable, its components are not listed")
	}
	if len(comps) == 0 {
		printMiss("", "no components match the selected filters")
		return nil
	}
	printComponents(comps, nil)
	return nil
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/kamusis/pandora-cli/internal/fetch"
	"github.com/kamusis/pandora-cli/internal/marketplace"
	"github.com/spf13/cobra"
)

var bundleCmd = &cobra.Command{
	Use:   "bundle <team> <type>",
	Short: "Show the install-all command for one team's components of a type",
	Args:  cobra.ExactArgs(2),
	RunE:  runBundle,
}

func init() {
	rootCmd.AddCommand(bundleCmd)
}

func runBundle(cmd *cobra.Command, args []string) error {
	team := args[0]
	t, err := marketplace.ParseComponentType(args[1])
	if err != nil {
		return err
	}
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	m, err := cat.Team(cmd.Context(), team)
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			return fmt.Errorf("team not found: %s\nRun 'pandora teams' to see the index.", team)
		}
		return fmt.Errorf("cannot load manifest for %s: %w", team, err)
	}

	printSection(fmt.Sprintf("%s %s", team, t.TitlePlural()))
	var names []string
	for _, e := range m.Components.Entries(t) {
		if n := marketplace.Normalize(e).Name; n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		printMiss(team, fmt.Sprintf("no %s in this team", t.Plural()))
		return nil
	}
	for _, n := range names {
		printOK(n, marketplace.BuildComponentPath(team, t, n))
	}
	fmt.Fprintln(stdout)
	printInfo("install", marketplace.InstallAllCommand(team, t))
	return nil
}

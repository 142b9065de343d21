package cmd

import (
	"fmt"
	"strings"

	"github.com/kamusis/pandora-cli/internal/marketplace"
	"github.com/spf13/cobra"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams in the community index and what they contribute",
	Args:  cobra.NoArgs,
	RunE:  runTeams,
}

func init() {
	rootCmd.AddCommand(teamsCmd)
}

func runTeams(cmd *cobra.Command, _ []string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	snap, err := cat.Snapshot(cmd.Context())
	if err != nil {
		return explainCatalogErr(err)
	}

	title := "Teams"
	if snap.Index != nil && snap.Index.Name != "" {
		title = snap.Index.Name
		if snap.Index.Version != "" {
			title += " v" + snap.Index.Version
		}
	}
	printSection(title)
	if snap.Index != nil && snap.Index.Description != "" {
		fmt.Fprintln(stdout, snap.Index.Description)
	}

	seen := make(map[string]bool, len(snap.Teams))
	for _, team := range snap.Teams {
		if team == "" || seen[team] {
			continue
		}
		seen[team] = true

		m, ok := snap.Manifests[team]
		if !ok {
			printWarn(team, fmt.Sprintf("manifest unavailable: %v", snap.Failed[team]))
			continue
		}
		n := m.Components.Count()
		if n == 0 {
			printSkip(team, "no components")
			continue
		}
		head := fmt.Sprintf("%d components (%s)", n, countsByType(m))
		if m.Version != "" {
			head = "v" + m.Version + ", " + head
		}
		printOK(team, head)
		if d := strings.TrimSpace(m.Description); d != "" {
			fmt.Fprintf(stdout, "       %s\n", d)
		}
		if len(m.Maintainers) > 0 {
			fmt.Fprintf(stdout, "       %s\n", mutedStyle.Render("maintainers: "+strings.Join(m.Maintainers, ", ")))
		}
	}
	return nil
}

// countsByType renders "2 agents, 1 skill" for the non-empty buckets.
func countsByType(m *marketplace.TeamManifest) string {
	var parts []string
	for _, t := range marketplace.ComponentTypes {
		n := len(m.Components.Entries(t))
		if n == 0 {
			continue
		}
		name := strings.ToLower(t.Title())
		if n > 1 {
			name = strings.ToLower(t.TitlePlural())
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, name))
	}
	return strings.Join(parts, ", ")
}

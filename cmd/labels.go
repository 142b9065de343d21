package cmd

import (
	"fmt"
	"sort"

	"github.com/kamusis/pandora-cli/internal/marketplace"
	"github.com/spf13/cobra"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the labels available for --label and how many components carry each",
	Args:  cobra.NoArgs,
	RunE:  runLabels,
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}

func runLabels(cmd *cobra.Command, _ []string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	st, err := cat.Stats(cmd.Context())
	if err != nil {
		return explainCatalogErr(err)
	}

	printSection("Labels")
	known := make(map[string]bool, len(marketplace.KnownLabels))
	for _, l := range marketplace.KnownLabels {
		known[l] = true
		if n := st.ByLabel[l]; n > 0 {
			printOK(l, fmt.Sprintf("%d components", n))
		} else {
			printSkip(l, "unused")
		}
	}

	var other []string
	for l := range st.ByLabel {
		if !known[l] {
			other = append(other, l)
		}
	}
	if len(other) == 0 {
		return nil
	}
	sort.Strings(other)
	printBullet("Other labels in use:")
	for _, l := range other {
		printInfo(l, fmt.Sprintf("%d components", st.ByLabel[l]))
	}
	return nil
}

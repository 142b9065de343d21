package cmd

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/kamusis/pandora-cli/internal/fetch"
	"github.com/kamusis/pandora-cli/internal/frontmatter"
	"github.com/kamusis/pandora-cli/internal/marketplace"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	flagShowTeam     string
	flagShowRaw      bool
	flagShowMetaOnly bool
	flagShowJSON     bool
)

var showCmd = &cobra.Command{
	Use:   "show <path | team/type/name | install-command>",
	Short: "Show a component's metadata, install command and content",
	Example: `  pandora show acme/agents/helper
  pandora show plugins/community/online/acme/skills/pdf-tools.md
  pandora show "/pandora:install acme/slash_commands/review-pr"`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&flagShowTeam, "team", "", "Team to report instead of the one in the path")
	showCmd.Flags().BoolVar(&flagShowRaw, "raw", false, "Print the markdown body without rendering")
	showCmd.Flags().BoolVar(&flagShowMetaOnly, "meta-only", false, "Print metadata only")
	showCmd.Flags().BoolVar(&flagShowJSON, "json", false, "Print the parsed component as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	p, err := marketplace.CanonicalPath(args[0])
	if err != nil {
		return err
	}
	cat, err := openCatalog()
	if err != nil {
		return err
	}

	var opts []marketplace.ResolveOption
	if t := strings.TrimSpace(flagShowTeam); t != "" {
		opts = append(opts, marketplace.WithTeam(t))
	}
	pc, err := cat.GetComponent(cmd.Context(), p, opts...)
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			return fmt.Errorf("component not found: %s\nCheck the name with 'pandora search'.", p)
		}
		return fmt.Errorf("cannot load component %s: %w", p, err)
	}

	if flagShowJSON {
		return printJSON(pc)
	}

	printComponentMeta(pc)
	if flagShowMetaOnly {
		return nil
	}
	body := strings.TrimSpace(pc.Content)
	if body == "" {
		printSkip("", "no content")
		return nil
	}
	fmt.Fprintln(stdout)
	fmt.Fprint(stdout, renderMarkdown(body+"\n", flagShowRaw))
	return nil
}

func printComponentMeta(pc *marketplace.ParsedComponent) {
	title := pc.Frontmatter.Name()
	if title == "" {
		title = strings.TrimSuffix(path.Base(pc.Path), ".md")
	}
	printSection(title)

	rows := [][2]string{
		{"Type", pc.Type.Title()},
		{"Team", pc.TeamName},
	}
	for _, k := range pc.Frontmatter.Keys() {
		if k == frontmatter.KeyName {
			continue
		}
		rows = append(rows, [2]string{humanizeKey(k), formatValue(pc.Frontmatter, k)})
	}
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	for _, r := range rows {
		printKV(r[0], r[1], width)
	}

	fmt.Fprintln(stdout)
	printInfo("install", marketplace.InstallCommand(pc.Path))
}

var keyCaser = cases.Title(language.English)

// humanizeKey turns "allowed-tools" into "Allowed Tools".
func humanizeKey(k string) string {
	k = strings.NewReplacer("-", " ", "_", " ").Replace(k)
	return keyCaser.String(k)
}

// formatValue renders a frontmatter value for the metadata table. Tool lists
// written as plain strings are split like lists.
func formatValue(fm frontmatter.Frontmatter, k string) string {
	switch v := fm[k].(type) {
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case []string:
		return strings.Join(v, ", ")
	}
	if k == frontmatter.KeyTools || k == frontmatter.KeyAllowedTools || k == frontmatter.KeySkills {
		return strings.Join(fm.List(k), ", ")
	}
	return fm.String(k)
}

package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/kamusis/pandora-cli/internal/config"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the configuration and that the marketplace is reachable",
	Long: `Check that pandora's configuration is valid and that the community index,
every team manifest and a sample component can be fetched.
Run this command when something seems wrong, or before filing a bug report.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("pandora doctor")
	fmt.Fprintln(stdout)

	// ── Check 1: config file ─────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ pandora.yaml ]")
	cfgPath, err := config.ConfigPath()
	if err != nil {
		failD("cannot determine home directory: %v", err)
	} else if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		printSkip("", "no config file, using defaults (run 'pandora config init' to create one)")
	} else {
		printOK("", "valid YAML: "+cfgPath)
	}
	cfg := appConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	for _, u := range [][2]string{{"raw_base_url", cfg.RawBaseURL}, {"manifest_base_url", cfg.ManifestBaseURL}} {
		if err := checkBaseURL(u[1]); err != nil {
			failD("%s: %v", u[0], err)
		} else {
			printOK(u[0], u[1])
		}
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		printWarn("", fmt.Sprintf("unknown log_level %q, expected debug, info, warn or error", cfg.LogLevel))
	}
	fmt.Fprintln(stdout)

	// ── Check 2: overrides ───────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ overrides ]")
	vals, err := config.GetConfigValues(config.EnvKeys...)
	if err != nil {
		failD("cannot read dotenv file: %v", err)
	} else {
		var set []string
		for _, k := range config.EnvKeys {
			if vals[k] != "" {
				set = append(set, k)
			}
		}
		if len(set) == 0 {
			printSkip("", "no environment or dotenv overrides")
		} else {
			printInfo("", "active: "+strings.Join(set, ", "))
		}
	}
	fmt.Fprintln(stdout)

	// ── Check 3: community index and manifests ───────────────────────────────
	fmt.Fprintln(stdout, "[ marketplace ]")
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	snap, err := cat.Snapshot(cmd.Context())
	if err != nil {
		failD("%v", err)
	} else {
		printOK("", fmt.Sprintf("community index: %d team(s)", len(snap.Teams)))
		for _, team := range snap.Missing() {
			failD("[%s] manifest unavailable: %v", team, snap.Failed[team])
		}
		if len(snap.Missing()) == 0 {
			printOK("", fmt.Sprintf("all manifests loaded, %d component(s)", len(snap.Components)))
		}

		// ── Check 4: raw content ─────────────────────────────────────────────
		if len(snap.Components) == 0 {
			printSkip("", "no components to sample")
		} else {
			p := snap.Components[0].Path
			if _, err := cat.GetComponent(cmd.Context(), p); err != nil {
				failD("cannot fetch %s: %v", p, err)
			} else {
				printOK("", "raw content reachable: "+p)
			}
		}
	}
	fmt.Fprintln(stdout)

	// ── Summary ──────────────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "===================")
	if allOK {
		fmt.Fprintln(stdout, okStyle.Render("✓")+"  All checks passed. pandora is ready to use.")
		return nil
	}
	fmt.Fprintln(stderr, errStyle.Render("✗")+"  One or more checks failed. See details above.")
	return fmt.Errorf("doctor found issues")
}

func checkBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}

package cmd

import (
	"runtime"

	"github.com/kamusis/pandora-cli/internal/config"
	"github.com/spf13/cobra"
)

// Set by the linker at release time.
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var flagVersionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show pandora version, build information and the marketplace in use",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&flagVersionJSON, "json", false, "Print build information as JSON")
	rootCmd.AddCommand(versionCmd)
}

type buildInfo struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"buildDate"`
	GoVersion   string `json:"goVersion"`
	Platform    string `json:"platform"`
	Marketplace string `json:"marketplace"`
}

func currentBuild() buildInfo {
	cfg := appConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return buildInfo{
		Version:     version,
		Commit:      emptyAsNA(commit),
		BuildDate:   emptyAsNA(buildDate),
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		Marketplace: cfg.ManifestBaseURL,
	}
}

func runVersion(_ *cobra.Command, _ []string) error {
	bi := currentBuild()
	if flagVersionJSON {
		return printJSON(bi)
	}
	rows := [][2]string{
		{"Version", bi.Version},
		{"Commit", bi.Commit},
		{"Build Date", bi.BuildDate},
		{"Go Version", bi.GoVersion},
		{"OS/Arch", bi.Platform},
		{"Marketplace", bi.Marketplace},
	}
	for _, r := range rows {
		printKV(r[0], r[1], len("Marketplace"))
	}
	return nil
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}

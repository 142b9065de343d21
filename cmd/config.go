package cmd

import (
	"fmt"
	"os"

	"github.com/kamusis/pandora-cli/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or inspect ~/.pandora/pandora.yaml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file and a dotenv template",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration after overrides",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}

	printSection("Config")
	if _, err := os.Stat(path); err == nil && !flagConfigForce {
		printSkip("", path+" already exists (use --force to overwrite)")
	} else {
		if err := config.Save(config.DefaultConfig()); err != nil {
			return err
		}
		printOK("", "wrote "+path)
	}

	created, err := config.EnsureDotEnvTemplate()
	if err != nil {
		return err
	}
	envPath, err := config.DotEnvPath()
	if err != nil {
		return err
	}
	if created {
		printOK("", "wrote "+envPath)
	} else {
		printSkip("", envPath+" already exists")
	}
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg := appConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	fmt.Fprintf(stdout, "# %s\n%s", path, data)
	return nil
}

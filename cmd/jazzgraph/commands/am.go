package commands

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/jazzgraph/am"
	"github.com/teranos/jazzgraph/display"
	"gopkg.in/yaml.v3"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage jazzgraph configuration",
	Long: `am: manage jazzgraph configuration ("I am")

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (JAZZGRAPH_* prefix)
3. Project config (./am.toml, searched upwards)
4. User config (~/.jazzgraph/am.toml)
5. System config (/etc/jazzgraph/am.toml)
6. Default values

Examples:
  jazzgraph am show                    # Show current configuration
  jazzgraph am show --format yaml
  jazzgraph am get graph.layout
  jazzgraph am init                    # Write ~/.jazzgraph/am.toml with defaults
  jazzgraph am init ./am.toml`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the merged jazzgraph configuration from all sources",
	Args:  cobra.NoArgs,
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a configuration value using dot notation (e.g., graph.layout, server.port)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Args:  cobra.NoArgs,
	RunE:  runAmValidate,
}

var amInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file holding every default",
	Long:  "Write am.toml with all defaults to path (default ~/.jazzgraph/am.toml). An existing file is backed up first.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAmInit,
}

var configFormat string

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amInitCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	if _, err := am.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings := am.GetViper().AllSettings()

	format := configFormat
	if display.ShouldOutputJSON(cmd) {
		format = "json"
	}

	switch format {
	case "json":
		return display.OutputJSON(settings)

	case "yaml":
		data, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		fmt.Printf("# jazzgraph configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		fmt.Printf("# jazzgraph configuration\n%s", string(data))

	default:
		return fmt.Errorf("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}
	return nil
}

func runAmGet(cmd *cobra.Command, args []string) error {
	if _, err := am.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	v := am.GetViper()
	if !v.IsSet(args[0]) {
		return fmt.Errorf("configuration key %q not found", args[0])
	}
	fmt.Println(v.Get(args[0]))
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	if path := am.ActiveConfigPath(); path != "" {
		pterm.Success.Printf("Configuration is valid (%s)\n", path)
		return nil
	}
	pterm.Success.Println("Configuration is valid (defaults only)")
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	path := am.UserConfigPath()
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("cannot resolve home directory; pass a path")
	}

	_, statErr := os.Stat(path)
	if err := am.WriteDefault(path); err != nil {
		return err
	}
	if statErr == nil {
		pterm.Info.Printf("Previous %s backed up\n", path)
	}
	pterm.Success.Printf("Wrote default configuration to %s\n", path)
	return nil
}

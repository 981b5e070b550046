package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldvault/fieldvault/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fieldvault",
	Short: "fieldvault - typed records over pluggable storage",
	Long: `fieldvault converts flat typed records into a portable field-mapping
form and persists it through interchangeable backends: a durable key-value
store or a single binary file with atomic writes.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: "+config.GetDefaultConfigPath()+")")
	rootCmd.PersistentFlags().String("data-dir", "", "Override the key-value store directory")
	rootCmd.PersistentFlags().String("files-dir", "", "Override the file backend directory")
}

// loadConfig resolves configuration from the --config flag, falling back to
// the default path, then applies directory overrides from flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	var cfg *config.Config
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
	}

	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	if dir, _ := cmd.Flags().GetString("files-dir"); dir != "" {
		cfg.FilesDir = dir
	}
	return cfg, nil
}

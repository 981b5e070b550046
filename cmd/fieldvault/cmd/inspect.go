package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldvault/fieldvault/pkg/store"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <name>",
	Short: "Print the field mappings stored in a file",
	Long: `Decode the named file in the file backend directory and print every
stored mapping field by field.

Example:
  fieldvault inspect readings.dat --files-dir ./files`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		backend, err := store.NewFileBackend(store.FileBackendConfig{Dir: cfg.FilesDir})
		if err != nil {
			return err
		}

		mappings, ok := backend.Load(args[0])
		if !ok {
			return fmt.Errorf("no readable mapping sequence stored at %q", args[0])
		}

		fmt.Printf("%s: %d mappings\n", args[0], len(mappings))
		for i, m := range mappings {
			fmt.Printf("[%d]\n", i)
			for _, name := range m.Names() {
				v := m[name]
				fmt.Printf("  %-12s %-7s %s\n", name, v.Kind(), v)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

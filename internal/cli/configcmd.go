package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scrambler/pkg/errors"
)

// configCommand creates the config command that shows the effective settings.
func (c *CLI) configCommand() *cobra.Command {
	var showPath, write bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML.

The output is the config file merged over the built-in defaults. With
--write it is saved back to the config file instead, creating the file and
its directory if needed, as a starting point for editing:

  scrambler config --write`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := c.loadConfig()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if write {
				if path == "" {
					return errors.New(errors.ErrCodeInvalidPath, "no config location; pass --config")
				}
				if err := cfg.Save(path); err != nil {
					return err
				}
				printSuccess("Wrote config")
				printFile(path)
				return nil
			}
			if showPath {
				_, err := fmt.Fprintln(w, path)
				return err
			}
			return cfg.Encode(w)
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "print the config file location instead")
	cmd.Flags().BoolVar(&write, "write", false, "save the effective configuration to the config file")
	cmd.MarkFlagsMutuallyExclusive("path", "write")

	return cmd
}

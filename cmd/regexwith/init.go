package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"regex-with/internal/config"
)

func newInitCmd(root *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a project file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := root.configFile()

			if !force {
				_, err := os.Stat(path)
				if err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}

				if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}

			if err := config.WriteFile(config.Default(), path); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)

			return err
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing project file")

	return cmd
}

package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"regex-with/internal/config"
	"regex-with/internal/ctxlog"
)

type rootOptions struct {
	dir        string
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "regexwith",
		Short:        "Generate regex-backed parsers for annotated Go types",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := ctxlog.New(cmd.ErrOrStderr(), opts.verbose)
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "directory to run in")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to the project file (default <dir>/"+config.DefaultFile+")")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newGenCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig reads the project file named by --config, or the default file
// in --dir when it exists.
func (o *rootOptions) loadConfig() (*config.File, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}

	return config.Load(o.dir)
}

func (o *rootOptions) configFile() string {
	if o.configPath != "" {
		return o.configPath
	}

	return filepath.Join(o.dir, config.DefaultFile)
}

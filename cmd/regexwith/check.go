package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"regex-with/internal/gen"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &genOptions{}

	cmd := &cobra.Command{
		Use:   "check [packages]",
		Short: "Report diagnostics and generated files that are out of date",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			opts.apply(cfg, args)

			if err := cfg.Validate(); err != nil {
				return err
			}

			p, files, err := runPipeline(cmd.Context(), root.dir, cfg, nil)
			printDiagnostics(cmd.ErrOrStderr(), p)

			if err != nil {
				return err
			}

			outdated, err := gen.Outdated(files)
			if err != nil {
				return err
			}

			for _, path := range outdated {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is out of date\n", path)
			}

			if len(outdated) > 0 {
				return fmt.Errorf("%d generated file(s) out of date, run regexwith gen", len(outdated))
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d target(s) up to date\n", p.Targets())

			return err
		},
	}

	opts.bind(cmd)

	return cmd
}

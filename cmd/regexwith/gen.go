package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"regex-with/internal/analyze"
	"regex-with/internal/config"
	"regex-with/internal/ctxlog"
	"regex-with/internal/gen"
)

func newGenCmd(root *rootOptions) *cobra.Command {
	opts := &genOptions{}

	cmd := &cobra.Command{
		Use:   "gen [packages]",
		Short: "Generate parsers for annotated types",
		Long: `Load the given packages (default "."), resolve every type annotated with
//regexwith:capturable and write the generated file into each package.
Packages without annotated types lose a previously generated file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			opts.apply(cfg, args)

			if err := cfg.Validate(); err != nil {
				return err
			}

			return generate(cmd.Context(), cmd.ErrOrStderr(), root.dir, cfg, nil)
		},
	}

	opts.bind(cmd)

	return cmd
}

// generate runs the pipeline and writes its output, printing diagnostics to w.
func generate(ctx context.Context, w io.Writer, dir string, cfg *config.File, patterns *analyze.PatternCache) error {
	p, files, err := runPipeline(ctx, dir, cfg, patterns)
	printDiagnostics(w, p)

	if err != nil {
		return err
	}

	changes, err := gen.WriteFiles(ctx, files)
	if err != nil {
		return err
	}

	written := 0

	for _, change := range changes {
		if change != gen.Unchanged {
			written++
		}
	}

	ctxlog.FromContext(ctx).Debug("generation complete",
		slog.Int("targets", p.Targets()),
		slog.Int("packages", len(files)),
		slog.Int("changed", written))

	return nil
}

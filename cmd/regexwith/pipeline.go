package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"regex-with/internal/analyze"
	"regex-with/internal/common"
	"regex-with/internal/config"
	"regex-with/internal/gen"
	"regex-with/internal/plan"
)

// genOptions are the flags shared by gen, check and watch. Flags that were
// set on the command line override the project file.
type genOptions struct {
	types           []string
	output          string
	strict          bool
	noTextUnmarshal bool
	runtimeModule   string
	changed         func(name string) bool
}

func (o *genOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVarP(&o.types, "type", "t", nil, "comma-separated type names to generate (default all annotated types)")
	flags.StringVarP(&o.output, "output", "o", common.DefaultOutput, "generated file name")
	flags.BoolVar(&o.strict, "strict", false, "treat warnings as errors")
	flags.BoolVar(&o.noTextUnmarshal, "no-text-unmarshaler", false, "do not generate UnmarshalText methods")
	flags.StringVar(&o.runtimeModule, "runtime-module", gen.DefaultRuntimeModule, "module path providing the capture and de packages")

	o.changed = func(name string) bool {
		return flags.Changed(name)
	}
}

// apply overlays explicitly set flags and positional package patterns on cfg.
func (o *genOptions) apply(cfg *config.File, args []string) {
	changed := o.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}

	if len(args) > 0 {
		cfg.Packages = args
	}

	if changed("type") {
		cfg.Types = o.types
	}

	if changed("output") {
		cfg.Output = o.output
	}

	if changed("strict") {
		cfg.Strict = o.strict
	}

	if changed("no-text-unmarshaler") {
		enabled := !o.noTextUnmarshal
		cfg.TextUnmarshaler = &enabled
	}

	if changed("runtime-module") {
		cfg.RuntimeModule = o.runtimeModule
	}
}

// runPipeline loads, resolves and generates. The plan is returned whenever
// resolution ran so callers can report its diagnostics. patterns may be nil.
func runPipeline(ctx context.Context, dir string, cfg *config.File, patterns *analyze.PatternCache) (*plan.Plan, []gen.GeneratedFile, error) {
	analyzer := analyze.NewAnalyzer(analyze.Config{
		Dir:        dir,
		Output:     cfg.Output,
		BuildFlags: cfg.BuildFlags,
	})

	graph, err := analyzer.LoadPackages(ctx, cfg.Packages...)
	if err != nil {
		return nil, nil, err
	}

	resolverConfig := plan.DefaultConfig()
	resolverConfig.Types = cfg.Types
	resolverConfig.Strict = cfg.Strict
	resolverConfig.TextUnmarshaler = cfg.GenerateText()
	resolverConfig.Patterns = patterns

	p, err := plan.NewResolver(graph, resolverConfig).Resolve()
	if err != nil {
		return p, nil, err
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{
		Output:        cfg.Output,
		RuntimeModule: cfg.RuntimeModule,
	})

	files, err := generator.Generate(ctx, p)
	if err != nil {
		return p, nil, err
	}

	return p, files, nil
}

func printDiagnostics(w io.Writer, p *plan.Plan) {
	if p == nil {
		return
	}

	for _, d := range p.Diagnostics.All() {
		fmt.Fprintln(w, d.String())
	}
}

// watchDirs maps package patterns to the directories to watch. Import paths
// cannot be mapped without loading, so they fall back to dir itself.
func watchDirs(dir string, patterns []string) []string {
	dirs := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		local := pattern == "." || strings.HasPrefix(pattern, "./") ||
			strings.HasPrefix(pattern, "../") || filepath.IsAbs(pattern)
		if !local {
			dirs = append(dirs, dir)
			continue
		}

		pattern = strings.TrimSuffix(pattern, "...")
		pattern = strings.TrimSuffix(pattern, "/")

		if pattern == "" {
			pattern = "."
		}

		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(dir, pattern)
		}

		dirs = append(dirs, filepath.Clean(pattern))
	}

	if common.IsEmpty(dirs) {
		dirs = append(dirs, dir)
	}

	return common.Dedup(dirs)
}

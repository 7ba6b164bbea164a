package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"log/slog"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"regex-with/internal/common"
	"regex-with/internal/ctxlog"
	"regex-with/internal/plan"
)

// DefaultRuntimeModule is the import path prefix of the runtime packages
// referenced by generated code.
const DefaultRuntimeModule = "regex-with"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Output is the file name written into each package directory.
	Output string
	// RuntimeModule is the module path providing the capture and de packages.
	RuntimeModule string
	// Parallelism caps concurrent package generation. Zero means GOMAXPROCS.
	Parallelism int
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Output:        common.DefaultOutput,
		RuntimeModule: DefaultRuntimeModule,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Output == "" {
		config.Output = common.DefaultOutput
	}

	if config.RuntimeModule == "" {
		config.RuntimeModule = DefaultRuntimeModule
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "regexwith_gen.go").
	Filename string
	// Package is the import path of the package.
	Package string
	// Content is the formatted Go source code. It is nil when the package has
	// no targets, in which case a previously generated file is removed.
	Content []byte
}

// Path returns the full path of the file.
func (f *GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Empty reports whether the package has nothing to generate.
func (f *GeneratedFile) Empty() bool {
	return f.Content == nil
}

// Generate renders one file per package in p, packages in parallel.
// Files come back in the plan's package order.
func (g *Generator) Generate(ctx context.Context, p *plan.Plan) ([]GeneratedFile, error) {
	log := ctxlog.FromContext(ctx)

	files := make([]GeneratedFile, len(p.Packages))

	limit := g.config.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i := range p.Packages {
		pkg := &p.Packages[i]

		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			file, err := g.generatePackage(pkg)
			if err != nil {
				return fmt.Errorf("generating %s: %w", pkg.Path, err)
			}

			files[i] = *file

			log.Debug("generated package",
				slog.String("package", pkg.Path),
				slog.Int("targets", len(pkg.Targets)))

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}

// generatePackage renders the file for one package.
func (g *Generator) generatePackage(pkg *plan.PackagePlan) (*GeneratedFile, error) {
	file := &GeneratedFile{
		Dir:      pkg.Dir,
		Filename: g.config.Output,
		Package:  pkg.Path,
	}

	if len(pkg.Targets) == 0 {
		return file, nil
	}

	data := g.buildTemplateData(pkg)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		_ = writeDebugUnformatted(pkg.Dir, g.config.Output, buf.Bytes())

		return nil, fmt.Errorf("formatting code: %w", err)
	}

	file.Content = formatted

	return file, nil
}

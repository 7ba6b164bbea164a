package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"regex-with/internal/common"
)

// DefaultFile is the file name searched for in the working directory.
const DefaultFile = ".regexwith.yaml"

// CurrentVersion is the only supported file version.
const CurrentVersion = "1"

// File is the parsed project file.
type File struct {
	Version string `yaml:"version"`
	// Packages are the package patterns to load. Defaults to ".".
	Packages []string `yaml:"packages,omitempty"`
	// Output is the generated file name written into each package.
	Output string `yaml:"output,omitempty"`
	// Types restricts generation to the packages declaring these type names.
	Types []string `yaml:"types,omitempty"`
	// Strict turns warnings into errors.
	Strict bool `yaml:"strict,omitempty"`
	// TextUnmarshaler controls generation of UnmarshalText. Defaults to true.
	TextUnmarshaler *bool `yaml:"text_unmarshaler,omitempty"`
	// RuntimeModule is the module path providing capture and de.
	RuntimeModule string `yaml:"runtime_module,omitempty"`
	// BuildFlags are passed to the go command when loading packages.
	BuildFlags []string `yaml:"build_flags,omitempty"`
	// Watch configures the watch command.
	Watch Watch `yaml:"watch,omitempty"`
}

// Watch configures file watching.
type Watch struct {
	// DebounceMs is the quiet period after the last change before regenerating.
	DebounceMs int `yaml:"debounce_ms,omitempty"`
	// MinIntervalMs is the minimum time between two regenerations.
	MinIntervalMs int `yaml:"min_interval_ms,omitempty"`
}

// GenerateText reports whether UnmarshalText should be generated.
func (f *File) GenerateText() bool {
	return f.TextUnmarshaler == nil || *f.TextUnmarshaler
}

// Default returns a File with every default applied.
func Default() *File {
	f := &File{}
	applyDefaults(f)

	return f
}

// Load reads DefaultFile from dir. A missing file yields the defaults.
func Load(dir string) (*File, error) {
	f, err := LoadFile(filepath.Join(dir, DefaultFile))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	return f, err
}

// LoadFile loads and parses a YAML project file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse parses YAML data into a File. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&f)

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}

	if len(f.Packages) == 0 {
		f.Packages = []string{"."}
	}

	if strings.TrimSpace(f.Output) == "" {
		f.Output = common.DefaultOutput
	}

	if f.Watch.DebounceMs <= 0 {
		f.Watch.DebounceMs = 300
	}

	if f.Watch.MinIntervalMs <= 0 {
		f.Watch.MinIntervalMs = 1000
	}
}

// Validate reports settings that cannot produce a usable generated file.
func (f *File) Validate() error {
	if f.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version %q (want %q)", f.Version, CurrentVersion)
	}

	if filepath.Base(f.Output) != f.Output || filepath.Ext(f.Output) != ".go" {
		return fmt.Errorf("output must be a .go file name without directories, got %q", f.Output)
	}

	if strings.HasSuffix(f.Output, "_test.go") {
		return fmt.Errorf("output %q would only be compiled into tests", f.Output)
	}

	return nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regex-with/internal/config"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestVersionCmdOutput(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, versionString()+"\n", stdout)
}

func TestRootCmdHasSubcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"gen", "check", "watch", "init", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestInitWritesDefaults(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := execute(t, "init", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, config.DefaultFile)

	cfg, err := config.LoadFile(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\n"), 0o644))

	_, _, err := execute(t, "init", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "init", "--dir", dir, "--force")
	require.NoError(t, err)
}

func TestGenRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\nbogus: true\n"), 0o644))

	_, _, err := execute(t, "gen", "--dir", dir)
	require.Error(t, err)
}

func TestGenRejectsBadOutputFlag(t *testing.T) {
	_, _, err := execute(t, "gen", "--dir", t.TempDir(), "-o", "sub/out.go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
}

func TestGenOptionsApply(t *testing.T) {
	opts := &genOptions{}
	cmd := &cobra.Command{Use: "gen"}
	opts.bind(cmd)

	require.NoError(t, cmd.ParseFlags([]string{"--type", "Record,Access", "--no-text-unmarshaler", "--strict"}))

	cfg := config.Default()
	cfg.Output = "custom_gen.go"
	opts.apply(cfg, []string{"./internal/..."})

	assert.Equal(t, []string{"./internal/..."}, cfg.Packages)
	assert.Equal(t, []string{"Record", "Access"}, cfg.Types)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.GenerateText())
	assert.Equal(t, "custom_gen.go", cfg.Output, "unset flags keep file values")
	assert.Empty(t, cfg.RuntimeModule)
}

func TestWatchDirs(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{name: "current", patterns: []string{"."}, want: []string{"work"}},
		{name: "recursive", patterns: []string{"./..."}, want: []string{"work"}},
		{name: "subdir", patterns: []string{"./logs/...", "./logs"}, want: []string{filepath.Join("work", "logs")}},
		{name: "import path", patterns: []string{"example.com/logs"}, want: []string{"work"}},
		{name: "none", patterns: nil, want: []string{"work"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, watchDirs("work", tt.patterns))
		})
	}
}

func TestCheckExamplesUpToDate(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	stdout, stderr, err := execute(t, "check", "--dir", filepath.Join("..", ".."), "./examples/...")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "up to date")
}

func TestGenTypeFilterKeepsOtherTypes(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	root := filepath.Join("..", "..")
	parsers := map[string][]string{
		"accesslog": {"func ParseEndpoint(", "func ParseEntry("},
		"basic":     {"func ParseRecord("},
		"missing":   {"func ParseLabeled("},
		"optional":  {"func ParsePerson("},
	}

	before := make(map[string][]byte)
	for pkg := range parsers {
		path := filepath.Join(root, "examples", pkg, "regexwith_gen.go")

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		before[path] = data
	}

	t.Cleanup(func() {
		for path, data := range before {
			_ = os.WriteFile(path, data, 0o644)
		}
	})

	_, stderr, err := execute(t, "gen", "--dir", root, "-t", "Endpoint", "./examples/...")
	require.NoError(t, err, stderr)

	for pkg, funcs := range parsers {
		path := filepath.Join(root, "examples", pkg, "regexwith_gen.go")

		data, err := os.ReadFile(path)
		require.NoError(t, err, pkg)

		for _, fn := range funcs {
			assert.Contains(t, string(data), fn, pkg)
		}

		assert.Equal(t, string(before[path]), string(data), pkg)
	}
}

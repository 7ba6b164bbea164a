package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
packages: ["./...", "./cmd/tool"]
output: zz_regexwith.go
types: [AccessLine, Record]
strict: true
text_unmarshaler: false
runtime_module: github.com/acme/regex-with
build_flags: ["-tags=integration"]
watch:
  debounce_ms: 50
  min_interval_ms: 200
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, []string{"./...", "./cmd/tool"}, f.Packages)
	assert.Equal(t, "zz_regexwith.go", f.Output)
	assert.Equal(t, []string{"AccessLine", "Record"}, f.Types)
	assert.True(t, f.Strict)
	assert.False(t, f.GenerateText())
	assert.Equal(t, "github.com/acme/regex-with", f.RuntimeModule)
	assert.Equal(t, []string{"-tags=integration"}, f.BuildFlags)
	assert.Equal(t, 50, f.Watch.DebounceMs)
	assert.Equal(t, 200, f.Watch.MinIntervalMs)
}

func TestParse_Defaults(t *testing.T) {
	for _, data := range []string{"", "version: \"1\"\n", "{}\n"} {
		f, err := Parse([]byte(data))
		require.NoError(t, err, data)

		assert.Equal(t, Default(), f)
		assert.Equal(t, []string{"."}, f.Packages)
		assert.Equal(t, "regexwith_gen.go", f.Output)
		assert.True(t, f.GenerateText())
		assert.Equal(t, 300, f.Watch.DebounceMs)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"unknown key", "outptu: x.go\n", "field outptu not found"},
		{"bad version", "version: \"2\"\n", "unsupported config version"},
		{"output with dir", "output: gen/x.go\n", "without directories"},
		{"output not go", "output: x.txt\n", "without directories"},
		{"test output", "output: x_test.go\n", "only be compiled into tests"},
		{"malformed", "packages: [\n", "failed to parse config YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	f, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), f)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("strict: true\n"), 0o644))

	f, err = Load(dir)
	require.NoError(t, err)
	assert.True(t, f.Strict)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("version: 3\n"), 0o644))

	_, err = Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), DefaultFile)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)

	off := false
	f := Default()
	f.Types = []string{"Record"}
	f.TextUnmarshaler = &off

	require.NoError(t, WriteFile(f, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f, loaded)
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldTrigger(t *testing.T) {
	tests := []struct {
		name string
		evt  fsnotify.Event
		want bool
	}{
		{"write go file", fsnotify.Event{Name: "pkg/record.go", Op: fsnotify.Write}, true},
		{"create go file", fsnotify.Event{Name: "pkg/new.go", Op: fsnotify.Create}, true},
		{"remove go file", fsnotify.Event{Name: "pkg/old.go", Op: fsnotify.Remove}, true},
		{"rename go file", fsnotify.Event{Name: "pkg/old.go", Op: fsnotify.Rename}, true},
		{"chmod only", fsnotify.Event{Name: "pkg/record.go", Op: fsnotify.Chmod}, false},
		{"generated output", fsnotify.Event{Name: "pkg/regexwith_gen.go", Op: fsnotify.Write}, false},
		{"debug sidecar", fsnotify.Event{Name: "pkg/regexwith_gen.unformatted.go", Op: fsnotify.Write}, false},
		{"test file", fsnotify.Event{Name: "pkg/record_test.go", Op: fsnotify.Write}, false},
		{"hidden file", fsnotify.Event{Name: "pkg/.record.go", Op: fsnotify.Write}, false},
		{"not go", fsnotify.Event{Name: "pkg/README.md", Op: fsnotify.Write}, false},
		{"empty name", fsnotify.Event{Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldTrigger(tt.evt, "regexwith_gen.go"))
		})
	}
}

func TestSkipDir(t *testing.T) {
	assert.True(t, skipDir(".git"))
	assert.True(t, skipDir("_examples"))
	assert.True(t, skipDir("vendor"))
	assert.True(t, skipDir("testdata"))
	assert.False(t, skipDir("internal"))
}

func TestRun_RegeneratesOnChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	calls := make(chan struct{}, 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, Options{
			Dirs:        []string{dir},
			Output:      "regexwith_gen.go",
			Debounce:    20 * time.Millisecond,
			MinInterval: time.Millisecond,
			Regenerate: func(context.Context) error {
				calls <- struct{}{}
				return nil
			},
		})
	}()

	waitCall := func(msg string) {
		t.Helper()

		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			require.FailNow(t, "timed out waiting for regeneration", msg)
		}
	}

	waitCall("initial run")

	// The watcher is registered before the initial run, so this write is seen.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "record.go"), []byte("package sub\n"), 0o644))
	waitCall("after write")

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "Run did not stop")
	}
}

func TestRun_MissingDir(t *testing.T) {
	err := Run(context.Background(), Options{
		Dirs:       []string{filepath.Join(t.TempDir(), "missing")},
		Regenerate: func(context.Context) error { return nil },
	})
	require.Error(t, err)
}

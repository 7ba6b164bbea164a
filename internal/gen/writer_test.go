package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regex-with/internal/common"
)

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	file := GeneratedFile{
		Dir:      dir,
		Filename: "regexwith_gen.go",
		Content:  []byte(common.GeneratedHeader + "\n\npackage x\n"),
	}

	outdated, err := Outdated([]GeneratedFile{file})
	require.NoError(t, err)
	assert.Equal(t, []string{file.Path()}, outdated)

	changes, err := WriteFiles(context.Background(), []GeneratedFile{file})
	require.NoError(t, err)
	assert.Equal(t, Written, changes[file.Path()])

	content, err := os.ReadFile(file.Path())
	require.NoError(t, err)
	assert.Equal(t, file.Content, content)

	changes, err = WriteFiles(context.Background(), []GeneratedFile{file})
	require.NoError(t, err)
	assert.Equal(t, Unchanged, changes[file.Path()])

	outdated, err = Outdated([]GeneratedFile{file})
	require.NoError(t, err)
	assert.Empty(t, outdated)
}

func TestWriteFiles_RemovesStale(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regexwith_gen.go")
	require.NoError(t, os.WriteFile(path, []byte(common.GeneratedHeader+"\n\npackage x\n"), filePerm))

	empty := GeneratedFile{Dir: dir, Filename: "regexwith_gen.go"}

	outdated, err := Outdated([]GeneratedFile{empty})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, outdated)

	changes, err := WriteFiles(context.Background(), []GeneratedFile{empty})
	require.NoError(t, err)
	assert.Equal(t, Removed, changes[path])
	assert.NoFileExists(t, path)
}

func TestWriteFiles_KeepsHandWritten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regexwith_gen.go")
	require.NoError(t, os.WriteFile(path, []byte("package x\n"), filePerm))

	empty := GeneratedFile{Dir: dir, Filename: "regexwith_gen.go"}

	changes, err := WriteFiles(context.Background(), []GeneratedFile{empty})
	require.NoError(t, err)
	assert.Equal(t, Unchanged, changes[path])
	assert.FileExists(t, path)

	outdated, err := Outdated([]GeneratedFile{empty})
	require.NoError(t, err)
	assert.Empty(t, outdated)
}

func TestChange_String(t *testing.T) {
	assert.Equal(t, "unchanged", Unchanged.String())
	assert.Equal(t, "written", Written.String())
	assert.Equal(t, "removed", Removed.String())
	assert.Equal(t, "unknown", Change(9).String())
}

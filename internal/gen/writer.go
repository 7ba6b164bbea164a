package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"regex-with/internal/common"
	"regex-with/internal/ctxlog"
)

// File permission constants.
const (
	filePerm = 0o644
)

// Change describes what WriteFiles did to one file.
type Change int

const (
	Unchanged Change = iota
	Written
	Removed
)

// String returns a human-readable change name.
func (c Change) String() string {
	switch c {
	case Unchanged:
		return "unchanged"
	case Written:
		return "written"
	case Removed:
		return "removed"
	default:
		return common.UnknownStr
	}
}

// WriteFiles writes every non-empty file into its package directory and
// removes previously generated files from packages that no longer have
// targets. Files whose content is already current are not touched.
func WriteFiles(ctx context.Context, files []GeneratedFile) (map[string]Change, error) {
	log := ctxlog.FromContext(ctx)
	changes := make(map[string]Change, len(files))

	for _, file := range files {
		change, err := writeFile(&file)
		if err != nil {
			return changes, err
		}

		changes[file.Path()] = change

		if change != Unchanged {
			log.Info("regexwith", slog.String("file", file.Path()), slog.String("change", change.String()))
		}
	}

	return changes, nil
}

func writeFile(file *GeneratedFile) (Change, error) {
	path := file.Path()

	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Unchanged, fmt.Errorf("reading %s: %w", path, err)
	}

	exists := err == nil

	if file.Empty() {
		// Only files we generated are ever removed.
		if !exists || !bytes.HasPrefix(current, []byte(common.GeneratedHeader)) {
			return Unchanged, nil
		}

		if err := os.Remove(path); err != nil {
			return Unchanged, fmt.Errorf("removing stale %s: %w", path, err)
		}

		return Removed, nil
	}

	if exists && bytes.Equal(current, file.Content) {
		return Unchanged, nil
	}

	if err := os.WriteFile(path, file.Content, filePerm); err != nil {
		return Unchanged, fmt.Errorf("writing file %s: %w", file.Filename, err)
	}

	return Written, nil
}

// Outdated returns the paths whose on-disk content differs from files: a
// missing or different generated file, or a stale one that would be removed.
func Outdated(files []GeneratedFile) ([]string, error) {
	var out []string

	for _, file := range files {
		current, err := os.ReadFile(file.Path())

		switch {
		case errors.Is(err, fs.ErrNotExist):
			if !file.Empty() {
				out = append(out, file.Path())
			}

		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", file.Path(), err)

		case file.Empty():
			if bytes.HasPrefix(current, []byte(common.GeneratedHeader)) {
				out = append(out, file.Path())
			}

		case !bytes.Equal(current, file.Content):
			out = append(out, file.Path())
		}
	}

	return out, nil
}

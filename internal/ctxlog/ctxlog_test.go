package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer

	logger := New(&buf, false)
	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestNew_Levels(t *testing.T) {
	var quiet, verbose bytes.Buffer

	New(&quiet, false).Debug("hidden")
	New(&verbose, true).Debug("shown", slog.String("k", "v"))

	assert.Empty(t, quiet.String())
	assert.Contains(t, verbose.String(), "msg=shown")
	assert.Contains(t, verbose.String(), "k=v")
}

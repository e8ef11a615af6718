package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, false, slog.LevelInfo)

	log.Debug("hidden")
	log.Info("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "k=v")
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, true, slog.LevelInfo)

	log.Info("event", "count", 3)
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
	assert.Contains(t, buf.String(), `"count":3`)
}

func TestAppendCtx(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, false, slog.LevelInfo)

	ctx := AppendCtx(context.Background(), slog.String("job", "dump"))
	ctx = AppendCtx(ctx, slog.String("file", "a.dcm"))
	log.InfoContext(ctx, "parsed")

	out := buf.String()
	assert.Contains(t, out, "job=dump")
	assert.Contains(t, out, "file=a.dcm")
}
